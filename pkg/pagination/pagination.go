// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

/*
Package pagination parses the paging window of admin listings and describes
it back in the response "meta" block.

	GET /api/v1/admin/users?page=2&limit=50&q=mona
*/
package pagination

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100

	// MaxSearchLength bounds the free-text filter in bytes before it reaches SQL.
	MaxSearchLength = 100
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Params is one requested page plus an optional free-text filter.
type Params struct {
	Page   int
	Limit  int
	Search string
}

func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// SearchPattern returns Search as a substring ILIKE pattern with wildcards
// escaped, or "" when no filter was given.
func (p Params) SearchPattern() string {
	if p.Search == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(p.Search) + "%"
}

// Meta is rendered next to "data" in paginated responses.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

func NewMeta(params Params, total int) Meta {
	meta := Meta{Page: params.Page, Limit: params.Limit, Total: total}
	if params.Limit > 0 {
		meta.TotalPages = (total + params.Limit - 1) / params.Limit
	}
	meta.HasNext = params.Page < meta.TotalPages
	return meta
}

// FromRequest reads page, limit and q. Anything unparsable or out of range
// falls back to the defaults instead of failing the request.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()

	params := Params{
		Page:   atLeastOne(query.Get("page"), DefaultPage),
		Limit:  atLeastOne(query.Get("limit"), DefaultLimit),
		Search: strings.TrimSpace(query.Get("q")),
	}

	if params.Limit > MaxLimit {
		params.Limit = DefaultLimit
	}
	params.Search = truncate(params.Search, MaxSearchLength)

	return params
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func atLeastOne(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
