// file: internal/models/book.go
// version: 1.1.0
// guid: 3c9e1f2a-7b4d-4e8f-a1c5-9d2b6e0f4a83

package models

import "time"

// Category classifies a book as a novel, a comic, or a manga.
type Category string

const (
	CategoryRoman Category = "roman"
	CategoryBD    Category = "bd"
	CategoryManga Category = "manga"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryRoman, CategoryBD, CategoryManga:
		return true
	default:
		return false
	}
}

// Categories lists all known categories in display order.
func Categories() []Category {
	return []Category{CategoryRoman, CategoryBD, CategoryManga}
}

// Status is the reading status of a book in the user's library.
type Status string

const (
	StatusToRead    Status = "to_read"
	StatusReading   Status = "reading"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusToRead, StatusReading, StatusCompleted:
		return true
	default:
		return false
	}
}

// Book represents a book in the user's collection or a remote search result.
// Optional fields use zero values rather than pointers; matching logic treats
// missing strings as empty and proceeds with reduced confidence.
type Book struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Author            string   `json:"author"`
	Category          Category `json:"category"`
	Status            Status   `json:"status,omitempty"`
	Saga              string   `json:"saga,omitempty"`
	VolumeNumber      int      `json:"volume_number,omitempty"`
	PublicationYear   int      `json:"publication_year,omitempty"`
	CoverURL          string   `json:"cover_url,omitempty"`
	NumberOfPages     int      `json:"number_of_pages,omitempty"`
	Rating            int      `json:"rating,omitempty"`
	ISBN              string   `json:"isbn,omitempty"`
	ExternalKey       string   `json:"external_key,omitempty"`
	Language          string   `json:"language,omitempty"`
	IsFromOpenLibrary bool     `json:"isFromOpenLibrary,omitempty"`
	IsOwned           bool     `json:"isOwned,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
