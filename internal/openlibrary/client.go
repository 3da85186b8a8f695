// file: internal/openlibrary/client.go
// version: 1.2.0
// guid: 0a4c6e8f-2b5d-47a9-81c3-5e7f9b0d2a64

// Package openlibrary is the HTTP client for the Open Library search API,
// the remote source of the search page. Responses are mapped to the
// application's Book shape and cached briefly per query.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/booktime/booktime/internal/cache"
	"github.com/booktime/booktime/internal/models"
)

// DefaultBaseURL is the public Open Library endpoint.
const DefaultBaseURL = "https://openlibrary.org"

const (
	defaultTimeout  = 30 * time.Second
	defaultCacheTTL = 5 * time.Minute
	defaultLimit    = 40
)

// SearchDoc is one document of an Open Library search response.
type SearchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	ISBN             []string `json:"isbn"`
	Language         []string `json:"language"`
	CoverI           int      `json:"cover_i"`
	NumberOfPagesMed int      `json:"number_of_pages_median"`
	EditionCount     int      `json:"edition_count"`
}

// SearchResponse is the envelope of /search.json.
type SearchResponse struct {
	NumFound int         `json:"numFound"`
	Start    int         `json:"start"`
	Docs     []SearchDoc `json:"docs"`
}

// Client queries the Open Library search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limit      int
	cache      *cache.Cache[[]models.Book]
}

// NewClient creates a client against the public API.
func NewClient() *Client {
	return NewClientWithBaseURL(DefaultBaseURL)
}

// NewClientWithBaseURL creates a client with a custom base URL, used by
// tests and by deployments behind a mirror.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		limit:      defaultLimit,
		cache:      cache.New[[]models.Book](defaultCacheTTL),
	}
}

// Name returns the display name for this remote source.
func (c *Client) Name() string {
	return "Open Library"
}

// Search runs a free-text query against /search.json and maps the documents
// to Book records flagged as remote. Repeated queries within the cache TTL
// are served from memory.
func (c *Client) Search(ctx context.Context, query string) ([]models.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if books, ok := c.cache.Get(query); ok {
		return books, nil
	}

	endpoint := fmt.Sprintf("%s/search.json?q=%s&limit=%d", c.baseURL, url.QueryEscape(query), c.limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open library search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open library search returned status %d", resp.StatusCode)
	}

	var parsed SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	books := make([]models.Book, 0, len(parsed.Docs))
	for _, doc := range parsed.Docs {
		books = append(books, docToBook(doc))
	}
	c.cache.Set(query, books)
	return books, nil
}

// docToBook maps one search document to a Book record.
func docToBook(doc SearchDoc) models.Book {
	b := models.Book{
		Title:             doc.Title,
		Category:          models.CategoryRoman,
		PublicationYear:   doc.FirstPublishYear,
		NumberOfPages:     doc.NumberOfPagesMed,
		ExternalKey:       doc.Key,
		IsFromOpenLibrary: true,
	}
	if len(doc.AuthorName) > 0 {
		b.Author = strings.Join(doc.AuthorName, ", ")
	}
	if len(doc.ISBN) > 0 {
		b.ISBN = doc.ISBN[0]
	}
	if len(doc.Language) > 0 {
		b.Language = doc.Language[0]
	}
	if doc.CoverI > 0 {
		b.CoverURL = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", doc.CoverI)
	}
	return b
}
