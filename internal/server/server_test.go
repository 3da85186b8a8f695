// file: internal/server/server_test.go
// version: 1.2.0
// guid: 3b5d7f9a-1c4e-46b8-92d0-6e8f0a2c4d16

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booktime/booktime/internal/catalog"
	"github.com/booktime/booktime/internal/database"
	"github.com/booktime/booktime/internal/models"
)

// stubRemote is a RemoteSearcher with canned results.
type stubRemote struct {
	books []models.Book
	err   error
	calls int
}

func (s *stubRemote) Name() string { return "stub" }

func (s *stubRemote) Search(_ context.Context, _ string) ([]models.Book, error) {
	s.calls++
	return s.books, s.err
}

func newTestServer(t *testing.T, remote *stubRemote) (*Server, database.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := database.NewPebbleStore(filepath.Join(t.TempDir(), "pebble"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cat, err := catalog.LoadDefault()
	require.NoError(t, err)

	if remote == nil {
		remote = &stubRemote{}
	}
	return New(store, cat, remote), store
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

type listEnvelope struct {
	Items json.RawMessage `json:"items"`
	Count int             `json:"count"`
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, nil)
	w := doRequest(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestSearch_BlankQuery(t *testing.T) {
	remote := &stubRemote{}
	s, _ := newTestServer(t, remote)

	w := doRequest(t, s, http.MethodGet, "/api/search?q=+++", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var env listEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, 0, env.Count)
	assert.Equal(t, 0, remote.calls, "blank query must not hit the remote source")
}

func TestSearch_ComposedResults(t *testing.T) {
	remote := &stubRemote{books: []models.Book{
		{Title: "Astérix le Gaulois", Author: "René Goscinny", IsFromOpenLibrary: true},
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", IsFromOpenLibrary: true},
	}}
	s, _ := newTestServer(t, remote)

	w := doRequest(t, s, http.MethodGet, "/api/search?q=ast%C3%A9rix", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Items []models.ComposedResult `json:"items"`
		Count int                     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, 2, env.Count)
	require.True(t, env.Items[0].IsSeriesCard)
	assert.Equal(t, "Astérix", env.Items[0].Card.Name)
	require.NotNil(t, env.Items[1].Book)
	assert.Equal(t, "The Hobbit", env.Items[1].Book.Title)
}

func TestSearch_RemoteFailure(t *testing.T) {
	remote := &stubRemote{err: errors.New("boom")}
	s, _ := newTestServer(t, remote)

	w := doRequest(t, s, http.MethodGet, "/api/search?q=dune", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "UPSTREAM_ERROR")
}

func TestLocalSearch(t *testing.T) {
	s, store := newTestServer(t, nil)
	_, err := store.CreateBook(&models.Book{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)
	_, err = store.CreateBook(&models.Book{Title: "Emma", Author: "Jane Austen"})
	require.NoError(t, err)

	w := doRequest(t, s, http.MethodGet, "/api/search/local?q=dune", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Items []models.AnnotatedBook `json:"items"`
		Count int                    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, 1, env.Count)
	assert.Equal(t, "Dune", env.Items[0].Title)
	assert.Greater(t, env.Items[0].Relevance, 0)
}

func TestCreateBook(t *testing.T) {
	s, store := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/api/books", gin.H{
		"title":    "Dune",
		"author":   "Frank Herbert",
		"category": "roman",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Book `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.ID)
	assert.True(t, resp.Data.IsOwned)

	n, err := store.CountBooks()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCreateBook_AutoDetectsSaga(t *testing.T) {
	s, _ := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/api/books", gin.H{
		"title":  "Harry Potter et la Coupe de Feu",
		"author": "J.K. Rowling",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Book `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Harry Potter", resp.Data.Saga)
}

func TestCreateBook_Validation(t *testing.T) {
	s, _ := newTestServer(t, nil)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing title", gin.H{"author": "X"}},
		{"bad category", gin.H{"title": "X", "category": "cookbook"}},
		{"bad status", gin.H{"title": "X", "status": "abandoned"}},
		{"bad rating", gin.H{"title": "X", "rating": 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, s, http.MethodPost, "/api/books", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetBook_NotFound(t *testing.T) {
	s, _ := newTestServer(t, nil)
	w := doRequest(t, s, http.MethodGet, "/api/books/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestUpdateAndDeleteBook(t *testing.T) {
	s, store := newTestServer(t, nil)
	created, err := store.CreateBook(&models.Book{Title: "Dune", Status: models.StatusToRead})
	require.NoError(t, err)

	w := doRequest(t, s, http.MethodPut, "/api/books/"+created.ID, gin.H{
		"title":  "Dune",
		"status": "completed",
		"rating": 5,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data models.Book `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusCompleted, resp.Data.Status)
	assert.Equal(t, 5, resp.Data.Rating)

	w = doRequest(t, s, http.MethodDelete, "/api/books/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, s, http.MethodDelete, "/api/books/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBooks(t *testing.T) {
	s, store := newTestServer(t, nil)
	for _, title := range []string{"A", "B", "C"} {
		_, err := store.CreateBook(&models.Book{Title: title})
		require.NoError(t, err)
	}

	w := doRequest(t, s, http.MethodGet, "/api/books?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Items []models.Book `json:"items"`
		Count int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, 2, env.Count)
}

func TestDetectSeries(t *testing.T) {
	s, _ := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/api/series/detect", gin.H{
		"title":  "Harry Potter et la Chambre des Secrets",
		"author": "J.K. Rowling",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.DetectionResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.BelongsToSeries)
	assert.Equal(t, "Harry Potter", resp.Data.SeriesName)
	assert.Equal(t, 95, resp.Data.Confidence)
	assert.Equal(t, models.MethodTitleAuthorPattern, resp.Data.Method)

	// Missing title is a binding error.
	w = doRequest(t, s, http.MethodPost, "/api/series/detect", gin.H{"author": "X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListCatalog(t *testing.T) {
	s, _ := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodGet, "/api/series/catalog?category=manga", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Items []struct {
			Slug     string          `json:"slug"`
			Category models.Category `json:"category"`
		} `json:"items"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Greater(t, env.Count, 0)
	for _, e := range env.Items {
		assert.Equal(t, models.CategoryManga, e.Category)
	}

	w = doRequest(t, s, http.MethodGet, "/api/series/catalog?category=cookbooks", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
