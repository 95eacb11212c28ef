// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package pagination_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/nagymedo25/Evolve-Nova-Back/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{"defaults", "", pagination.Params{Page: 1, Limit: 20}},
		{"explicit", "?page=3&limit=50&q=%20ali%20", pagination.Params{Page: 3, Limit: 50, Search: "ali"}},
		{"negative_page", "?page=-2", pagination.Params{Page: 1, Limit: 20}},
		{"zero_limit", "?limit=0", pagination.Params{Page: 1, Limit: 20}},
		{"limit_too_large", "?limit=1000", pagination.Params{Page: 1, Limit: 20}},
		{"garbage", "?page=abc&limit=xyz", pagination.Params{Page: 1, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/admin/users"+tt.query, nil)
			assert.Equal(t, tt.want, pagination.FromRequest(r))
		})
	}

	t.Run("long_search_truncated", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/admin/users?q="+strings.Repeat("a", 300), nil)
		assert.Len(t, pagination.FromRequest(r).Search, pagination.MaxSearchLength)
	})

	t.Run("arabic_search_cut_on_rune_boundary", func(t *testing.T) {
		q := "a" + strings.Repeat("م", 60)
		r := httptest.NewRequest("GET", "/api/v1/admin/users?q="+url.QueryEscape(q), nil)

		search := pagination.FromRequest(r).Search

		assert.True(t, utf8.ValidString(search))
		assert.LessOrEqual(t, len(search), pagination.MaxSearchLength)
		assert.Equal(t, "a"+strings.Repeat("م", 49), search)
	})
}

func TestNewMeta(t *testing.T) {
	params := pagination.Params{Page: 2, Limit: 20}

	assert.Equal(t, 20, params.Offset())
	assert.Equal(t,
		pagination.Meta{Page: 2, Limit: 20, Total: 41, TotalPages: 3, HasNext: true},
		pagination.NewMeta(params, 41))

	last := pagination.NewMeta(pagination.Params{Page: 3, Limit: 20}, 41)
	assert.False(t, last.HasNext)

	assert.Equal(t, 0, pagination.NewMeta(pagination.Params{Page: 1}, 10).TotalPages)
}

func TestSearchPattern(t *testing.T) {
	tests := []struct {
		search string
		want   string
	}{
		{"", ""},
		{"mona", "%mona%"},
		{"100%", `%100\%%`},
		{"a_b", `%a\_b%`},
		{`c:\x`, `%c:\\x%`},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.Params{Search: tt.search}.SearchPattern())
		})
	}
}
