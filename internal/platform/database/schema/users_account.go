// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

// Package schema names the tables and columns shared by several stores, so a
// column rename touches one file.
package schema

// UserAccountTable represents the 'users' table
type UserAccountTable struct {
	Table     string
	ID        string
	Name      string
	Email     string
	Password  string
	Role      string
	Status    string
	CreatedAt string
}

// UserAccount is the schema definition for users
var UserAccount = UserAccountTable{
	Table:     "users",
	ID:        "id",
	Name:      "name",
	Email:     "email",
	Password:  "password_hash",
	Role:      "role",
	Status:    "status",
	CreatedAt: "created_at",
}

// PublicColumns returns the safe projection, password hash excluded.
func (t UserAccountTable) PublicColumns() []string {
	return []string{t.ID, t.Name, t.Email, t.Role, t.Status, t.CreatedAt}
}

// Columns returns every column including the password hash.
func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Name, t.Email, t.Password, t.Role, t.Status, t.CreatedAt}
}
