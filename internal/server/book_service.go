// file: internal/server/book_service.go
// version: 1.2.0
// guid: 4f6b8d0e-2a5c-47f1-99d3-7b9d1f3a5c06

package server

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/booktime/booktime/internal/database"
	"github.com/booktime/booktime/internal/detector"
	"github.com/booktime/booktime/internal/metrics"
	"github.com/booktime/booktime/internal/models"
)

// BookRequest is the payload for creating or updating a book.
type BookRequest struct {
	Title             string          `json:"title" binding:"required"`
	Author            string          `json:"author"`
	Category          models.Category `json:"category"`
	Status            models.Status   `json:"status"`
	Saga              string          `json:"saga"`
	VolumeNumber      int             `json:"volume_number"`
	PublicationYear   int             `json:"publication_year"`
	CoverURL          string          `json:"cover_url"`
	NumberOfPages     int             `json:"number_of_pages"`
	Rating            int             `json:"rating"`
	ISBN              string          `json:"isbn"`
	ExternalKey       string          `json:"external_key"`
	Language          string          `json:"language"`
	IsFromOpenLibrary bool            `json:"isFromOpenLibrary"`
}

func (r *BookRequest) toBook() (*models.Book, string) {
	category := r.Category
	if category == "" {
		category = models.CategoryRoman
	}
	if !category.Valid() {
		return nil, "category must be one of roman, bd, manga"
	}
	status := r.Status
	if status == "" {
		status = models.StatusToRead
	}
	if !status.Valid() {
		return nil, "status must be one of to_read, reading, completed"
	}
	if r.Rating < 0 || r.Rating > 5 {
		return nil, "rating must be between 1 and 5"
	}
	return &models.Book{
		Title:             strings.TrimSpace(r.Title),
		Author:            strings.TrimSpace(r.Author),
		Category:          category,
		Status:            status,
		Saga:              strings.TrimSpace(r.Saga),
		VolumeNumber:      r.VolumeNumber,
		PublicationYear:   r.PublicationYear,
		CoverURL:          r.CoverURL,
		NumberOfPages:     r.NumberOfPages,
		Rating:            r.Rating,
		ISBN:              r.ISBN,
		ExternalKey:       r.ExternalKey,
		Language:          r.Language,
		IsFromOpenLibrary: r.IsFromOpenLibrary,
		IsOwned:           true,
	}, ""
}

// handleCreateBook stores a new book. When the user supplied no saga and the
// detector places the book in a known series confidently, the detected
// series name is stored so future searches can group it.
func (s *Server) handleCreateBook(c *gin.Context) {
	var req BookRequest
	if HandleBindError(c, c.ShouldBindJSON(&req)) {
		return
	}
	book, problem := req.toBook()
	if problem != "" {
		RespondWithValidationError(c, "book", problem)
		return
	}

	if book.Saga == "" {
		if res := s.detector.Detect(*book); res.BelongsToSeries && res.Confidence >= detector.DefaultMaskConfidence {
			book.Saga = res.SeriesName
			metrics.IncDetection(string(res.Method))
		}
	}

	created, err := s.store.CreateBook(book)
	if err != nil {
		RespondWithInternalError(c, "failed to store book")
		return
	}
	if n, err := s.store.CountBooks(); err == nil {
		metrics.SetBooks(n)
	}
	RespondWithCreated(c, created)
}

func (s *Server) handleListBooks(c *gin.Context) {
	limit := ParseQueryInt(c, "limit", 50)
	offset := ParseQueryInt(c, "offset", 0)

	books, err := s.store.GetAllBooks(limit, offset)
	if err != nil {
		RespondWithInternalError(c, "failed to list books")
		return
	}
	if books == nil {
		books = []models.Book{}
	}
	RespondWithList(c, books, len(books))
}

func (s *Server) handleGetBook(c *gin.Context) {
	id := c.Param("id")
	book, err := s.store.GetBookByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			RespondWithNotFound(c, "book", id)
			return
		}
		RespondWithInternalError(c, "failed to load book")
		return
	}
	RespondWithOK(c, book)
}

func (s *Server) handleUpdateBook(c *gin.Context) {
	id := c.Param("id")
	var req BookRequest
	if HandleBindError(c, c.ShouldBindJSON(&req)) {
		return
	}
	book, problem := req.toBook()
	if problem != "" {
		RespondWithValidationError(c, "book", problem)
		return
	}

	updated, err := s.store.UpdateBook(id, book)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			RespondWithNotFound(c, "book", id)
			return
		}
		RespondWithInternalError(c, "failed to update book")
		return
	}
	RespondWithOK(c, updated)
}

func (s *Server) handleDeleteBook(c *gin.Context) {
	id := c.Param("id")
	if err := s.store.DeleteBook(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			RespondWithNotFound(c, "book", id)
			return
		}
		RespondWithInternalError(c, "failed to delete book")
		return
	}
	if n, err := s.store.CountBooks(); err == nil {
		metrics.SetBooks(n)
	}
	RespondWithNoContent(c)
}
