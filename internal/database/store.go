// file: internal/database/store.go
// version: 1.2.0
// guid: 3e5a7c9b-1d4f-46e8-a0b2-7c9e1f3a5d86

// Package database persists the user's book collection. The Store interface
// is backed by PebbleDB by default; SQLite3 is available behind an explicit
// opt-in flag.
package database

import (
	"errors"
	"fmt"

	"github.com/booktime/booktime/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations the application needs.
type Store interface {
	// Lifecycle
	Close() error
	Reset() error

	// Books
	CreateBook(book *models.Book) (*models.Book, error) // Generates a ULID when ID is empty
	GetBookByID(id string) (*models.Book, error)
	GetAllBooks(limit, offset int) ([]models.Book, error)
	UpdateBook(id string, book *models.Book) (*models.Book, error)
	DeleteBook(id string) error
	SearchBooks(query string, limit, offset int) ([]models.Book, error)
	GetBooksBySaga(saga string) ([]models.Book, error)
	CountBooks() (int, error)

	// User preferences
	GetUserPreference(key string) (string, bool, error)
	SetUserPreference(key, value string) error
}

// GlobalStore is the process-wide store instance set by InitializeStore.
var GlobalStore Store

// InitializeStore opens the configured backend and assigns GlobalStore.
// SQLite requires the explicit enable flag; anything else falls back to
// Pebble.
func InitializeStore(databaseType, path string, enableSQLite bool) error {
	switch databaseType {
	case "sqlite":
		if !enableSQLite {
			return fmt.Errorf("sqlite backend requested but not enabled; set enable_sqlite3_i_know_the_risks")
		}
		store, err := NewSQLiteStore(path)
		if err != nil {
			return fmt.Errorf("failed to open sqlite store: %w", err)
		}
		GlobalStore = store
	case "", "pebble":
		store, err := NewPebbleStore(path)
		if err != nil {
			return fmt.Errorf("failed to open pebble store: %w", err)
		}
		GlobalStore = store
	default:
		return fmt.Errorf("unknown database type %q", databaseType)
	}
	return nil
}

// CloseStore closes and clears the global store.
func CloseStore() error {
	if GlobalStore == nil {
		return nil
	}
	err := GlobalStore.Close()
	GlobalStore = nil
	return err
}
