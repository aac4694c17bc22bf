// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package crossref looks up bibliographic records by DOI.
package crossref

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/doi-curator/internal/httputil"
	"github.com/pdiddy/doi-curator/pkg/types"
)

// apiBase is the CrossRef works endpoint. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://api.crossref.org/works/"

// Client fetches works from the CrossRef REST API.
type Client struct {
	HTTP   *http.Client
	Config types.HTTPConfig
}

type worksResponse struct {
	Message work `json:"message"`
}

type work struct {
	Title    []string `json:"title"`
	Abstract string   `json:"abstract"`
	Subject  []string `json:"subject"`
	Author   []author `json:"author"`
}

type author struct {
	Given       string        `json:"given"`
	Family      string        `json:"family"`
	Name        string        `json:"name"`
	ORCID       string        `json:"ORCID"`
	ROR         string        `json:"ROR"`
	Email       string        `json:"email"`
	URL         string        `json:"url"`
	Role        string        `json:"role"`
	Affiliation []affiliation `json:"affiliation"`
}

type affiliation struct {
	Name string          `json:"name"`
	ID   []affiliationID `json:"id"`
}

type affiliationID struct {
	ID     string `json:"id"`
	IDType string `json:"id-type"`
}

// Lookup fetches the record for doi. The caller decides how to treat
// errors; the pipeline treats any error as "not found".
func (c *Client) Lookup(ctx context.Context, doi string) (*types.BibliographicRecord, error) {
	doi = strings.TrimSpace(doi)
	apiURL := apiBase + (&url.URL{Path: doi}).EscapedPath()
	if c.Config.Mailto != "" {
		apiURL += "?mailto=" + url.QueryEscape(c.Config.Mailto)
	}

	var wr worksResponse
	err := httputil.GetJSON(ctx, c.HTTP, httputil.Request{
		URL:       apiURL,
		UserAgent: c.Config.UserAgent,
	}, &wr)
	if err != nil {
		return nil, fmt.Errorf("CrossRef lookup %s: %w", doi, err)
	}

	return toRecord(doi, wr.Message), nil
}

func toRecord(doi string, w work) *types.BibliographicRecord {
	rec := &types.BibliographicRecord{DOI: doi}
	if len(w.Title) > 0 {
		rec.Title = types.StringPtr(strings.TrimSpace(w.Title[0]))
	}
	rec.Abstract = types.StringPtr(StripMarkup(w.Abstract))

	for _, s := range w.Subject {
		if s = strings.TrimSpace(s); s != "" {
			rec.Subjects = append(rec.Subjects, s)
		}
	}

	for _, a := range w.Author {
		raw := types.RawContributor{
			Family: strings.TrimSpace(a.Family),
			Given:  strings.TrimSpace(a.Given),
			ORCID:  strings.TrimSpace(a.ORCID),
			Name:   strings.TrimSpace(a.Name),
			ROR:    strings.TrimSpace(a.ROR),
			Email:  a.Email,
			URL:    a.URL,
			Role:   a.Role,
		}
		for _, af := range a.Affiliation {
			aff := types.Affiliation{Name: af.Name}
			if len(af.ID) > 0 {
				aff.ID = af.ID[0].ID
			}
			raw.Affiliations = append(raw.Affiliations, aff)
		}
		rec.Authors = append(rec.Authors, raw)
	}
	return rec
}

// StripMarkup converts a JATS/HTML abstract fragment to plain text.
// Section titles (e.g. <jats:title>Abstract</jats:title>) are dropped and
// whitespace is collapsed. Plain text passes through unchanged apart from
// whitespace.
func StripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	doc.Find("*").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return len(sel.Nodes) > 0 && strings.HasSuffix(sel.Nodes[0].Data, "title")
	}).Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}
