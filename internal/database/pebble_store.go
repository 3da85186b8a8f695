// file: internal/database/pebble_store.go
// version: 1.3.0
// guid: 5f7b9d1e-3a6c-48f0-b2d4-9e1f3a5c7b08

package database

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/pebble/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	ulid "github.com/oklog/ulid/v2"

	"github.com/booktime/booktime/internal/models"
	"github.com/booktime/booktime/internal/similarity"
)

// PebbleStore implements Store using PebbleDB (LSM key-value store).
//
// Key Schema:
// - book:<ulid>       -> Book JSON
// - preference:<key>  -> raw value
type PebbleStore struct {
	db *pebble.DB
}

const (
	bookPrefix = "book:"
	prefPrefix = "preference:"
)

// NewPebbleStore opens (creating if needed) a PebbleDB store at path.
func NewPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open PebbleDB: %w", err)
	}
	return &PebbleStore{db: db}, nil
}

// Close closes the database
func (p *PebbleStore) Close() error {
	return p.db.Close()
}

// Reset deletes every record. Used by tests and the reset endpoint.
func (p *PebbleStore) Reset() error {
	iter, err := p.db.NewIter(nil)
	if err != nil {
		return err
	}
	var keys [][]byte
	for iter.First(); iter.Valid(); iter.Next() {
		key := make([]byte, len(iter.Key()))
		copy(key, iter.Key())
		keys = append(keys, key)
	}
	if err := iter.Close(); err != nil {
		return err
	}
	for _, key := range keys {
		if err := p.db.Delete(key, pebble.Sync); err != nil {
			return err
		}
	}
	return nil
}

func newULID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (p *PebbleStore) putBook(book *models.Book) error {
	data, err := json.Marshal(book)
	if err != nil {
		return err
	}
	return p.db.Set([]byte(bookPrefix+book.ID), data, pebble.Sync)
}

// CreateBook stores a new book, generating a ULID when the ID is empty.
func (p *PebbleStore) CreateBook(book *models.Book) (*models.Book, error) {
	if book.ID == "" {
		id, err := newULID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate book ID: %w", err)
		}
		book.ID = id
	}
	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now
	if err := p.putBook(book); err != nil {
		return nil, fmt.Errorf("failed to store book: %w", err)
	}
	return book, nil
}

// GetBookByID fetches one book.
func (p *PebbleStore) GetBookByID(id string) (*models.Book, error) {
	value, closer, err := p.db.Get([]byte(bookPrefix + id))
	if err == pebble.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	var book models.Book
	if err := json.Unmarshal(value, &book); err != nil {
		return nil, fmt.Errorf("failed to decode book %s: %w", id, err)
	}
	return &book, nil
}

// allBooks scans every book record, newest first.
func (p *PebbleStore) allBooks() ([]models.Book, error) {
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(bookPrefix),
		UpperBound: []byte(bookPrefix + "\xff"),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var books []models.Book
	for iter.First(); iter.Valid(); iter.Next() {
		var book models.Book
		if err := json.Unmarshal(iter.Value(), &book); err != nil {
			continue
		}
		books = append(books, book)
	}
	sort.Slice(books, func(i, j int) bool {
		if !books[i].CreatedAt.Equal(books[j].CreatedAt) {
			return books[i].CreatedAt.After(books[j].CreatedAt)
		}
		return books[i].ID < books[j].ID
	})
	return books, nil
}

// GetAllBooks returns a page of books, newest first. limit <= 0 means all.
func (p *PebbleStore) GetAllBooks(limit, offset int) ([]models.Book, error) {
	books, err := p.allBooks()
	if err != nil {
		return nil, err
	}
	return paginate(books, limit, offset), nil
}

// UpdateBook replaces the stored book, preserving creation time.
func (p *PebbleStore) UpdateBook(id string, book *models.Book) (*models.Book, error) {
	existing, err := p.GetBookByID(id)
	if err != nil {
		return nil, err
	}
	book.ID = id
	book.CreatedAt = existing.CreatedAt
	book.UpdatedAt = time.Now().UTC()
	if err := p.putBook(book); err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return book, nil
}

// DeleteBook removes a book.
func (p *PebbleStore) DeleteBook(id string) error {
	if _, err := p.GetBookByID(id); err != nil {
		return err
	}
	return p.db.Delete([]byte(bookPrefix+id), pebble.Sync)
}

// SearchBooks matches the query against title, author and saga: normalized
// substring containment first, fuzzy token match as a fallback for typos.
func (p *PebbleStore) SearchBooks(query string, limit, offset int) ([]models.Book, error) {
	nq := similarity.Normalize(query)
	if nq == "" {
		return nil, nil
	}
	books, err := p.allBooks()
	if err != nil {
		return nil, err
	}
	var matched []models.Book
	for _, b := range books {
		if bookMatchesQuery(b, nq) {
			matched = append(matched, b)
		}
	}
	return paginate(matched, limit, offset), nil
}

func bookMatchesQuery(b models.Book, nq string) bool {
	haystack := similarity.Normalize(strings.Join([]string{b.Title, b.Author, b.Saga}, " "))
	if strings.Contains(haystack, nq) {
		return true
	}
	for _, w := range strings.Fields(haystack) {
		if fuzzy.MatchNormalizedFold(nq, w) {
			return true
		}
	}
	return false
}

// GetBooksBySaga returns all books whose saga equals saga after
// normalization.
func (p *PebbleStore) GetBooksBySaga(saga string) ([]models.Book, error) {
	nsaga := similarity.Normalize(saga)
	if nsaga == "" {
		return nil, nil
	}
	books, err := p.allBooks()
	if err != nil {
		return nil, err
	}
	var out []models.Book
	for _, b := range books {
		if similarity.Normalize(b.Saga) == nsaga {
			out = append(out, b)
		}
	}
	return out, nil
}

// CountBooks returns the number of stored books.
func (p *PebbleStore) CountBooks() (int, error) {
	books, err := p.allBooks()
	if err != nil {
		return 0, err
	}
	return len(books), nil
}

// GetUserPreference fetches one preference value.
func (p *PebbleStore) GetUserPreference(key string) (string, bool, error) {
	value, closer, err := p.db.Get([]byte(prefPrefix + key))
	if err == pebble.ErrNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	defer closer.Close()
	return string(value), true, nil
}

// SetUserPreference stores one preference value.
func (p *PebbleStore) SetUserPreference(key, value string) error {
	return p.db.Set([]byte(prefPrefix+key), []byte(value), pebble.Sync)
}

func paginate(books []models.Book, limit, offset int) []models.Book {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(books) {
		return nil
	}
	books = books[offset:]
	if limit > 0 && limit < len(books) {
		books = books[:limit]
	}
	return books
}
