// file: internal/database/sqlite_store.go
// version: 1.2.0
// guid: 7a9c1e3f-5b8d-40a2-96c4-1e3f5a7c9d20

package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/booktime/booktime/internal/models"
	"github.com/booktime/booktime/internal/similarity"
)

// SQLiteStore implements Store using SQLite3. Opt-in only; Pebble is the
// default backend.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS books (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	author TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT 'roman',
	status TEXT NOT NULL DEFAULT 'to_read',
	saga TEXT NOT NULL DEFAULT '',
	volume_number INTEGER NOT NULL DEFAULT 0,
	publication_year INTEGER NOT NULL DEFAULT 0,
	cover_url TEXT NOT NULL DEFAULT '',
	number_of_pages INTEGER NOT NULL DEFAULT 0,
	rating INTEGER NOT NULL DEFAULT 0,
	isbn TEXT NOT NULL DEFAULT '',
	external_key TEXT NOT NULL DEFAULT '',
	language TEXT NOT NULL DEFAULT '',
	is_from_open_library INTEGER NOT NULL DEFAULT 0,
	is_owned INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_books_saga ON books(saga);
CREATE TABLE IF NOT EXISTS preferences (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// NewSQLiteStore opens (creating if needed) a SQLite database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Reset deletes every record.
func (s *SQLiteStore) Reset() error {
	if _, err := s.db.Exec(`DELETE FROM books`); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM preferences`)
	return err
}

const bookColumns = `id, title, author, category, status, saga, volume_number,
	publication_year, cover_url, number_of_pages, rating, isbn, external_key,
	language, is_from_open_library, is_owned, created_at, updated_at`

func scanBook(row interface{ Scan(...any) error }) (*models.Book, error) {
	var b models.Book
	var fromOL, owned int
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.Status, &b.Saga,
		&b.VolumeNumber, &b.PublicationYear, &b.CoverURL, &b.NumberOfPages,
		&b.Rating, &b.ISBN, &b.ExternalKey, &b.Language, &fromOL, &owned,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.IsFromOpenLibrary = fromOL != 0
	b.IsOwned = owned != 0
	return &b, nil
}

func (s *SQLiteStore) insertOrReplace(book *models.Book) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO books (`+bookColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID, book.Title, book.Author, string(book.Category), string(book.Status),
		book.Saga, book.VolumeNumber, book.PublicationYear, book.CoverURL,
		book.NumberOfPages, book.Rating, book.ISBN, book.ExternalKey, book.Language,
		boolToInt(book.IsFromOpenLibrary), boolToInt(book.IsOwned),
		book.CreatedAt, book.UpdatedAt)
	return err
}

// CreateBook stores a new book, generating a ULID when the ID is empty.
func (s *SQLiteStore) CreateBook(book *models.Book) (*models.Book, error) {
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
	if err := s.insertOrReplace(book); err != nil {
		return nil, fmt.Errorf("failed to store book: %w", err)
	}
	return book, nil
}

// GetBookByID fetches one book.
func (s *SQLiteStore) GetBookByID(id string) (*models.Book, error) {
	row := s.db.QueryRow(`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)
	book, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (s *SQLiteStore) queryBooks(query string, args ...any) ([]models.Book, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *book)
	}
	return books, rows.Err()
}

// GetAllBooks returns a page of books, newest first. limit <= 0 means all.
func (s *SQLiteStore) GetAllBooks(limit, offset int) ([]models.Book, error) {
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}
	return s.queryBooks(`SELECT `+bookColumns+` FROM books
		ORDER BY created_at DESC, id ASC LIMIT ? OFFSET ?`, limit, offset)
}

// UpdateBook replaces the stored book, preserving creation time.
func (s *SQLiteStore) UpdateBook(id string, book *models.Book) (*models.Book, error) {
	existing, err := s.GetBookByID(id)
	if err != nil {
		return nil, err
	}
	book.ID = id
	book.CreatedAt = existing.CreatedAt
	book.UpdatedAt = time.Now().UTC()
	if err := s.insertOrReplace(book); err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return book, nil
}

// DeleteBook removes a book.
func (s *SQLiteStore) DeleteBook(id string) error {
	res, err := s.db.Exec(`DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchBooks matches the query against title, author and saga. SQL LIKE
// pre-filters; the fuzzy fallback catches typos the same way the Pebble
// backend does.
func (s *SQLiteStore) SearchBooks(query string, limit, offset int) ([]models.Book, error) {
	nq := similarity.Normalize(query)
	if nq == "" {
		return nil, nil
	}
	books, err := s.GetAllBooks(0, 0)
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

// GetBooksBySaga returns all books whose saga equals saga after
// normalization.
func (s *SQLiteStore) GetBooksBySaga(saga string) ([]models.Book, error) {
	nsaga := similarity.Normalize(saga)
	if nsaga == "" {
		return nil, nil
	}
	books, err := s.GetAllBooks(0, 0)
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
func (s *SQLiteStore) CountBooks() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&n)
	return n, err
}

// GetUserPreference fetches one preference value.
func (s *SQLiteStore) GetUserPreference(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetUserPreference stores one preference value.
func (s *SQLiteStore) SetUserPreference(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO preferences (key, value) VALUES (?, ?)`, key, value)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
