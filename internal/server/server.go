// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the curation pipeline over HTTP.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/doi-curator/internal/narrative"
	"github.com/pdiddy/doi-curator/internal/pipeline"
)

// Server handles extraction requests. Each request runs on its own
// pipeline instance built from Deps.
type Server struct {
	Deps pipeline.Deps

	// DefaultMode is the keyword mode used when a request names none.
	DefaultMode string
}

// New returns a Server sharing deps across requests.
func New(deps pipeline.Deps, defaultMode string) *Server {
	return &Server{Deps: deps, DefaultMode: defaultMode}
}

// SetupRouter registers the routes.
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.Health)
	api := r.Group("/api")
	api.POST("/extract", s.Extract)

	return r
}

// Health reports liveness.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ExtractRequest is the body of POST /api/extract.
type ExtractRequest struct {
	DOI         string `json:"doi" binding:"required"`
	DandisetID  string `json:"dandiset_id" binding:"required"`
	KeywordMode string `json:"keyword_mode"`
	Combined    bool   `json:"combined"`
}

// Extract runs the full pipeline for one DOI and dandiset.
func (s *Server) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx := c.Request.Context()
	x, err := pipeline.New(ctx, s.Deps, req.DOI, req.DandisetID)
	if err != nil {
		s.fail(c, err)
		return
	}

	if req.Combined {
		res, err := x.AssembleCombined(ctx)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
		return
	}

	mode := req.KeywordMode
	if mode == "" {
		mode = s.DefaultMode
	}
	c.JSON(http.StatusOK, x.Assemble(ctx, mode))
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, pipeline.ErrInvalidInput), errors.Is(err, pipeline.ErrNotFound):
		status = http.StatusBadRequest
	case errors.Is(err, narrative.ErrMalformedResponse):
		status = http.StatusBadGateway
	}
	if s.Deps.Log != nil {
		fmt.Fprintf(s.Deps.Log, "warning: extract request failed: %v\n", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
