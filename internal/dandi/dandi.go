// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dandi looks up dataset records in the DANDI Archive.
package dandi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/doi-curator/internal/httputil"
	"github.com/pdiddy/doi-curator/pkg/types"
)

// apiBase is the DANDI API root. Declared as a var so tests can substitute
// an httptest server.
var apiBase = "https://api.dandiarchive.org/api"

// DefaultVersion is the dataset version used when none is given.
const DefaultVersion = "draft"

// DatasetID is a parsed "id/version" dataset identifier.
type DatasetID struct {
	ID      string
	Version string
}

func (d DatasetID) String() string {
	return d.ID + "/" + d.Version
}

// ParseDatasetID splits s into exactly two non-empty "/"-delimited
// segments. Any other shape is rejected.
func ParseDatasetID(s string) (DatasetID, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return DatasetID{}, fmt.Errorf("invalid dandiset ID %q: want <id>/<version>", s)
	}
	return DatasetID{ID: parts[0], Version: parts[1]}, nil
}

// Client fetches raw dandiset metadata.
type Client struct {
	HTTP   *http.Client
	Config types.HTTPConfig
}

// rawMetadata captures the fields the pipeline uses from a dandiset's
// version metadata.
type rawMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Lookup fetches the metadata for a dandiset version. An empty version
// selects DefaultVersion.
func (c *Client) Lookup(ctx context.Context, id, version string) (*types.DatasetRecord, error) {
	if version == "" {
		version = DefaultVersion
	}
	apiURL := fmt.Sprintf("%s/dandisets/%s/versions/%s/", apiBase, url.PathEscape(id), url.PathEscape(version))

	var meta rawMetadata
	err := httputil.GetJSON(ctx, c.HTTP, httputil.Request{
		URL:       apiURL,
		UserAgent: c.Config.UserAgent,
	}, &meta)
	if err != nil {
		return nil, fmt.Errorf("DANDI lookup %s/%s: %w", id, version, err)
	}

	return &types.DatasetRecord{
		ID:          id,
		Version:     version,
		Name:        types.StringPtr(strings.TrimSpace(meta.Name)),
		Description: types.StringPtr(strings.TrimSpace(meta.Description)),
	}, nil
}
