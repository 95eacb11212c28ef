// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

// Package cookie owns the attributes of the session cookie.
//
// The cookie is always HttpOnly. It is Secure whenever the request arrived over TLS
// (directly or through a proxy) and always in cross-site mode, where SameSite=None
// is only honoured by browsers together with Secure.
package cookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/constants"
)

// Policy decides the attributes of the session cookie.
type Policy struct {
	// CrossSite serves the frontend from another site: SameSite=None; Secure.
	CrossSite bool

	// ForceSecure sets Secure regardless of how the request arrived (production).
	ForceSecure bool
}

// Read returns the session token presented by the client.
func (policy Policy) Read(request *http.Request) (string, bool) {
	c, err := request.Cookie(constants.TokenCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Set writes the session cookie with an expiry mirroring the token's.
func (policy Policy) Set(writer http.ResponseWriter, request *http.Request, token string, expiresAt time.Time) {
	c := policy.base(request)
	c.Value = token
	c.Expires = expiresAt.UTC()
	c.MaxAge = int(time.Until(expiresAt).Seconds())
	if c.MaxAge <= 0 {
		c.MaxAge = -1
	}
	http.SetCookie(writer, c)
}

// Clear instructs the browser to drop the session cookie.
func (policy Policy) Clear(writer http.ResponseWriter, request *http.Request) {
	c := policy.base(request)
	c.Expires = time.Unix(0, 0).UTC()
	c.MaxAge = -1
	http.SetCookie(writer, c)
}

func (policy Policy) base(request *http.Request) *http.Cookie {
	c := &http.Cookie{
		Name:     constants.TokenCookieName,
		Path:     constants.TokenCookiePath,
		HttpOnly: true,
		Secure:   policy.ForceSecure || policy.CrossSite || isTLS(request),
		SameSite: http.SameSiteLaxMode,
	}
	if policy.CrossSite {
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}

func isTLS(request *http.Request) bool {
	if request.TLS != nil {
		return true
	}
	return strings.EqualFold(request.Header.Get(constants.HeaderXForwardedProto), "https")
}
