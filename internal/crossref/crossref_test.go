// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crossref

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/doi-curator/pkg/types"
)

const sampleWorkJSON = `{
  "status": "ok",
  "message": {
    "title": ["Brain-wide study"],
    "abstract": "<jats:title>Abstract</jats:title><jats:p>We map   whole-brain activity.</jats:p>",
    "subject": ["Neuroscience", " ", "Decision-Making"],
    "author": [
      {"given": "carol", "family": "white", "ORCID": "http://orcid.org/0000-0002-1825-0097",
       "affiliation": [{"name": "Lab A", "id": [{"id": "https://ror.org/01abc", "id-type": "ROR"}]}]},
      {"given": "Dave", "family": "Brown", "affiliation": []},
      {"name": "International Brain Laboratory"}
    ]
  }
}`

func withServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	old := apiBase
	apiBase = ts.URL + "/works/"
	t.Cleanup(func() { apiBase = old })
	return &Client{HTTP: ts.Client(), Config: types.HTTPConfig{UserAgent: "doi-curator/test", Mailto: "curator@example.org"}}
}

func TestLookup(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	c := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleWorkJSON)
	})

	rec, err := c.Lookup(context.Background(), "  10.1038/s41467-023-41261-2 ")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if gotPath != "/works/10.1038/s41467-023-41261-2" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "mailto=curator%40example.org" {
		t.Errorf("query = %q", gotQuery)
	}
	if gotUA != "doi-curator/test" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if rec.DOI != "10.1038/s41467-023-41261-2" {
		t.Errorf("DOI = %q", rec.DOI)
	}
	if types.Deref(rec.Title) != "Brain-wide study" {
		t.Errorf("Title = %q", types.Deref(rec.Title))
	}
	if types.Deref(rec.Abstract) != "We map whole-brain activity." {
		t.Errorf("Abstract = %q", types.Deref(rec.Abstract))
	}
	if len(rec.Subjects) != 2 || rec.Subjects[0] != "Neuroscience" || rec.Subjects[1] != "Decision-Making" {
		t.Errorf("Subjects = %v", rec.Subjects)
	}
	if len(rec.Authors) != 3 {
		t.Fatalf("got %d authors, want 3", len(rec.Authors))
	}
	first := rec.Authors[0]
	if first.ORCID != "http://orcid.org/0000-0002-1825-0097" || first.Family != "white" {
		t.Errorf("first author = %+v", first)
	}
	if len(first.Affiliations) != 1 || first.Affiliations[0].ID != "https://ror.org/01abc" || first.Affiliations[0].Name != "Lab A" {
		t.Errorf("affiliations = %+v", first.Affiliations)
	}
	if rec.Authors[2].IsPerson() {
		t.Errorf("organization entry classified as person")
	}
}

func TestLookupEscapesReservedCharacters(t *testing.T) {
	tests := []struct {
		doi  string
		path string
	}{
		{"10.1000/a?b=1", "/works/10.1000/a?b=1"},
		{"10.1000/abc#frag", "/works/10.1000/abc#frag"},
		{"10.1000/x y%z", "/works/10.1000/x y%z"},
	}
	for _, tt := range tests {
		t.Run(tt.doi, func(t *testing.T) {
			var gotPath, gotQuery string
			c := withServer(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.RawQuery
				fmt.Fprint(w, `{"message": {}}`)
			})

			rec, err := c.Lookup(context.Background(), tt.doi)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			if gotPath != tt.path {
				t.Errorf("path = %q, want %q", gotPath, tt.path)
			}
			if gotQuery != "mailto=curator%40example.org" {
				t.Errorf("query = %q", gotQuery)
			}
			if rec.DOI != tt.doi {
				t.Errorf("DOI = %q", rec.DOI)
			}
		})
	}
}

func TestLookupMissingFields(t *testing.T) {
	c := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message": {}}`)
	})

	rec, err := c.Lookup(context.Background(), "10.1145/1234567")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if rec.Title != nil || rec.Abstract != nil || rec.Subjects != nil || rec.Authors != nil {
		t.Errorf("expected empty record, got %+v", rec)
	}
}

func TestLookupNotFound(t *testing.T) {
	c := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Resource not found.", http.StatusNotFound)
	})

	_, err := c.Lookup(context.Background(), "10.1145/nonexistent")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("expected 404 error, got %v", err)
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  plain   text ", "plain text"},
		{"jats paragraphs", "<jats:p>First.</jats:p>\n<jats:p>Second.</jats:p>", "First. Second."},
		{"jats title dropped", "<jats:title>Abstract</jats:title><jats:p>Body</jats:p>", "Body"},
		{"html inline", "<p>A <i>mouse</i> study</p>", "A mouse study"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkup(tt.in); got != tt.want {
				t.Errorf("StripMarkup(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
