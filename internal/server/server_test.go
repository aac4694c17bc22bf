// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doi-curator/internal/llm"
	"github.com/pdiddy/doi-curator/internal/pipeline"
	"github.com/pdiddy/doi-curator/pkg/types"
)

type mockBib struct{ err error }

func (m mockBib) Lookup(_ context.Context, doi string) (*types.BibliographicRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	title := "Orientation tuning"
	return &types.BibliographicRecord{
		DOI:     doi,
		Title:   &title,
		Authors: []types.RawContributor{{Family: "Doe", Given: "Jane"}},
	}, nil
}

type mockDatasets struct{}

func (mockDatasets) Lookup(_ context.Context, id, version string) (*types.DatasetRecord, error) {
	return &types.DatasetRecord{ID: id, Version: version}, nil
}

type mockGenerator struct{ combined string }

func (m mockGenerator) Generate(_ context.Context, req llm.Request) (string, error) {
	switch {
	case strings.Contains(req.System, "tasked with developing"):
		return m.combined, nil
	case strings.Contains(req.System, "extracting important"):
		return "V1, mouse", nil
	}
	return "The study target is to map V1.", nil
}

func newTestRouter(bibErr error, combined string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	s := New(pipeline.Deps{
		Bibliographic: mockBib{err: bibErr},
		Datasets:      mockDatasets{},
		Gen:           mockGenerator{combined: combined},
	}, "llm")
	return s.SetupRouter()
}

func post(t *testing.T, r http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/extract", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(nil, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestExtract(t *testing.T) {
	r := newTestRouter(nil, "")
	w := post(t, r, `{"doi": "10.1038/x", "dandiset_id": "000409/draft"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res types.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "10.1038/x", res.DOI)
	assert.Equal(t, "000409/draft", res.DatasetID)
	assert.NotEmpty(t, res.RunID)
	require.Len(t, res.Contributors, 1)
	assert.Equal(t, "Doe, Jane", *res.Contributors[0].Name)
	assert.Equal(t, "The study target is to map V1.", *res.StudyTarget)
	assert.Equal(t, []string{"V1", "mouse"}, res.Keywords)
}

func TestExtractCombined(t *testing.T) {
	r := newTestRouter(nil, `{"study_target": "The study target is to X.", "keywords": ["X"]}`)
	w := post(t, r, `{"doi": "10.1038/x", "dandiset_id": "000409/draft", "combined": true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res types.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "The study target is to X.", *res.StudyTarget)
	assert.Equal(t, []string{"X"}, res.Keywords)
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name     string
		bibErr   error
		combined string
		body     string
		want     int
	}{
		{"malformed body", nil, "", `{"doi": `, http.StatusBadRequest},
		{"missing dandiset", nil, "", `{"doi": "10.1038/x"}`, http.StatusBadRequest},
		{"invalid dandiset", nil, "", `{"doi": "10.1038/x", "dandiset_id": "000409"}`, http.StatusBadRequest},
		{"arxiv doi", nil, "", `{"doi": "10.48550/arXiv.1", "dandiset_id": "000409/draft"}`, http.StatusBadRequest},
		{"unknown doi", errors.New("404"), "", `{"doi": "10.1038/x", "dandiset_id": "000409/draft"}`, http.StatusBadRequest},
		{"malformed combined", nil, "no json here", `{"doi": "10.1038/x", "dandiset_id": "000409/draft", "combined": true}`, http.StatusBadGateway},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := post(t, newTestRouter(tc.bibErr, tc.combined), tc.body)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestExtractUnknownKeywordMode(t *testing.T) {
	w := post(t, newTestRouter(nil, ""), `{"doi": "10.1038/x", "dandiset_id": "000409/draft", "keyword_mode": "tfidf"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Nil(t, got["keywords"])
	assert.NotNil(t, got["study_target"])
}
