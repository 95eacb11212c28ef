// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package schema

// UserSessionTable represents the 'active_sessions' table
type UserSessionTable struct {
	Table    string
	Token    string
	UserID   string
	LastSeen string
}

// UserSession is the schema definition for active_sessions
var UserSession = UserSessionTable{
	Table:    "active_sessions",
	Token:    "session_token",
	UserID:   "user_id",
	LastSeen: "last_seen",
}

// Columns returns all standard column names
func (t UserSessionTable) Columns() []string {
	return []string{t.Token, t.UserID, t.LastSeen}
}
