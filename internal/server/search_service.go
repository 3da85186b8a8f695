// file: internal/server/search_service.go
// version: 1.2.0
// guid: 2e4a6c8d-0f3b-45d9-87c1-5a7c9e1f3b84

package server

import (
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/booktime/booktime/internal/metrics"
	"github.com/booktime/booktime/internal/models"
)

// handleSearch runs the full composition pipeline: remote results from Open
// Library plus the user's own library, turned into series cards and scored
// plain books. A blank query returns an empty list without any remote call.
func (s *Server) handleSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		RespondWithList(c, []models.ComposedResult{}, 0)
		return
	}

	remote, err := s.remote.Search(c.Request.Context(), query)
	if err != nil {
		metrics.IncRemoteSearchError()
		RespondWithBadGateway(c, "remote search failed")
		return
	}

	library, err := s.store.GetAllBooks(0, 0)
	if err != nil {
		RespondWithInternalError(c, "failed to load library")
		return
	}

	start := time.Now()
	results := s.composer.Compose(query, remote, library)
	metrics.ObserveComposeDuration(time.Since(start))
	metrics.IncSearch()
	remoteShown := 0
	for _, r := range results {
		if r.IsSeriesCard && r.Card != nil {
			metrics.IncSeriesCard(r.Card.SourceType)
		} else if r.Book != nil && r.Book.IsFromOpenLibrary {
			remoteShown++
		}
	}
	if masked := len(remote) - remoteShown; masked > 0 {
		metrics.AddBooksMasked(masked)
	}

	RespondWithList(c, results, len(results))
}

// handleLocalSearch searches only the stored library, ordered by relevance.
func (s *Server) handleLocalSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		RespondWithList(c, []models.AnnotatedBook{}, 0)
		return
	}
	limit := ParseQueryInt(c, "limit", 50)
	offset := ParseQueryInt(c, "offset", 0)

	books, err := s.store.SearchBooks(query, limit, offset)
	if err != nil {
		RespondWithInternalError(c, "search failed")
		return
	}

	annotated := make([]models.AnnotatedBook, 0, len(books))
	for _, b := range books {
		badge := b.Category
		if !badge.Valid() {
			badge = models.CategoryRoman
		}
		annotated = append(annotated, models.AnnotatedBook{
			Book:          b,
			CategoryBadge: badge,
			Relevance:     s.scorer.Score(b, query),
		})
	}
	sort.SliceStable(annotated, func(i, j int) bool {
		return annotated[i].Relevance > annotated[j].Relevance
	})

	RespondWithList(c, annotated, len(annotated))
}
