// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package orcid enriches person contributors with contact data from the
// ORCID public registry.
package orcid

import (
	"context"
	"net/http"
	"strings"

	"github.com/pdiddy/doi-curator/internal/httputil"
	"github.com/pdiddy/doi-curator/pkg/types"
)

// apiBase is the ORCID public API root. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://pub.orcid.org/v3.0/"

// Client queries person profiles on the ORCID public API.
type Client struct {
	HTTP   *http.Client
	Config types.HTTPConfig
}

// person mirrors the parts of /v3.0/{id}/person the pipeline reads. Every
// level is a pointer or slice so a missing field decodes to nil.
type person struct {
	Emails *struct {
		Email []struct {
			Email string `json:"email"`
		} `json:"email"`
	} `json:"emails"`
	ResearcherURLs *struct {
		ResearcherURL []struct {
			URL *struct {
				Value string `json:"value"`
			} `json:"url"`
		} `json:"researcher-url"`
	} `json:"researcher-urls"`
}

// Lookup returns the first public email and the first researcher URL for
// a bare ORCID identifier. It never fails: a missing id, transport error,
// non-200 status, or unexpected payload yields (nil, nil).
func (c *Client) Lookup(ctx context.Context, id string) (email, url *string) {
	if id == "" {
		return nil, nil
	}

	var p person
	err := httputil.GetJSON(ctx, c.HTTP, httputil.Request{
		URL:       apiBase + id + "/person",
		Accept:    "application/json",
		UserAgent: c.Config.UserAgent,
	}, &p)
	if err != nil {
		return nil, nil
	}

	if p.Emails != nil && len(p.Emails.Email) > 0 {
		email = types.StringPtr(p.Emails.Email[0].Email)
	}
	if p.ResearcherURLs != nil && len(p.ResearcherURLs.ResearcherURL) > 0 {
		if u := p.ResearcherURLs.ResearcherURL[0].URL; u != nil && u.Value != "" {
			n := NormalizeURL(u.Value)
			url = &n
		}
	}
	return email, url
}

// NormalizeURL rewrites a researcher URL to the scheme convention expected
// by the dataset schema: "https://" becomes "http://", a value with no
// scheme gets "http://" prepended after trimming, and "http://" URLs are
// left unchanged.
//
// This downgrades https links. It is kept for compatibility with the
// consuming schema validator, not as a security choice.
func NormalizeURL(u string) string {
	switch {
	case strings.HasPrefix(u, "https://"):
		return "http://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		return u
	default:
		return "http://" + strings.TrimSpace(u)
	}
}

// BareID strips any URL prefix from an ORCID, keeping the final path
// segment: "https://orcid.org/0000-0002-1825-0097" → "0000-0002-1825-0097".
func BareID(orcid string) string {
	orcid = strings.TrimSpace(orcid)
	if i := strings.LastIndex(orcid, "/"); i >= 0 {
		return orcid[i+1:]
	}
	return orcid
}
