// file: internal/server/series_service.go
// version: 1.1.0
// guid: 6a8c0e2f-4b7d-49a3-91e5-9d1f3b5c7e28

package server

import (
	"github.com/gin-gonic/gin"

	"github.com/booktime/booktime/internal/metrics"
	"github.com/booktime/booktime/internal/models"
)

// DetectRequest is the payload of the series detection endpoint.
type DetectRequest struct {
	Title  string `json:"title" binding:"required"`
	Author string `json:"author"`
	Saga   string `json:"saga"`
}

// handleDetectSeries exposes the detection cascade, method tag included, so
// the UI can explain why a book was matched to a series.
func (s *Server) handleDetectSeries(c *gin.Context) {
	var req DetectRequest
	if HandleBindError(c, c.ShouldBindJSON(&req)) {
		return
	}

	result := s.detector.Detect(models.Book{
		Title:  req.Title,
		Author: req.Author,
		Saga:   req.Saga,
	})
	metrics.IncDetection(string(result.Method))
	RespondWithOK(c, result)
}

// catalogEntry is the wire shape of one catalog row.
type catalogEntry struct {
	Slug        string          `json:"slug"`
	Category    models.Category `json:"category"`
	Name        string          `json:"name"`
	Authors     []string        `json:"authors"`
	VolumeCount int             `json:"volume_count"`
	Status      string          `json:"status,omitempty"`
}

// handleListCatalog lists the reference series dataset, optionally filtered
// by category.
func (s *Server) handleListCatalog(c *gin.Context) {
	categoryFilter := models.Category(c.Query("category"))
	if categoryFilter != "" && !categoryFilter.Valid() {
		RespondWithValidationError(c, "category", "must be one of roman, bd, manga")
		return
	}

	entries := s.catalog.AllEntries()
	out := make([]catalogEntry, 0, len(entries))
	for _, e := range entries {
		if categoryFilter != "" && e.Category != categoryFilter {
			continue
		}
		out = append(out, catalogEntry{
			Slug:        e.Slug,
			Category:    e.Category,
			Name:        e.Definition.Name,
			Authors:     e.Definition.Authors,
			VolumeCount: e.Definition.VolumeCount,
			Status:      e.Definition.Status,
		})
	}
	RespondWithList(c, out, len(out))
}
