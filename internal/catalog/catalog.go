// file: internal/catalog/catalog.go
// version: 1.2.0
// guid: 9e2c5a1f-4b7d-483e-9f0a-6c3d8b1e7f24

// Package catalog holds the static reference dataset of known book, comic
// and manga series that all detection logic matches against. The dataset is
// loaded once from JSON (an embedded default or an external file) and never
// mutated afterwards.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/booktime/booktime/internal/models"
	"github.com/booktime/booktime/internal/similarity"
)

//go:embed data/series.json
var defaultData []byte

// SeriesStatus values for a catalog entry.
const (
	StatusCompleted = "completed"
	StatusOngoing   = "ongoing"
)

// SeriesDefinition describes one known series: its canonical name, authors,
// and the match metadata (keywords, spelling variations, translations,
// exclusion terms) the detector and composer compare against.
type SeriesDefinition struct {
	Name         string            `json:"name"`
	Authors      []string          `json:"authors"`
	Category     models.Category   `json:"-"`
	VolumeCount  int               `json:"volume_count"`
	VolumeTitles map[string]string `json:"volume_titles,omitempty"`
	Keywords     []string          `json:"keywords,omitempty"`
	Variations   []string          `json:"variations,omitempty"`
	Exclusions   []string          `json:"exclusions,omitempty"`
	Translations map[string]string `json:"translations,omitempty"`
	Status       string            `json:"status,omitempty"`
}

// Entry is one catalog row: the slug it is keyed by, its category, and the
// definition itself.
type Entry struct {
	Slug       string
	Category   models.Category
	Definition SeriesDefinition
}

// Catalog is the loaded, read-only series dataset partitioned by category.
type Catalog struct {
	byCategory map[models.Category]map[string]SeriesDefinition
	entries    []Entry
}

// Load parses a category -> slug -> definition JSON document. Unknown
// category keys are rejected; duplicate slugs within a category are already
// collapsed by JSON decoding (last one wins).
func Load(data []byte) (*Catalog, error) {
	var raw map[string]map[string]SeriesDefinition
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse series catalog: %w", err)
	}

	c := &Catalog{byCategory: make(map[models.Category]map[string]SeriesDefinition)}
	for cat, defs := range raw {
		category := models.Category(cat)
		if !category.Valid() {
			return nil, fmt.Errorf("series catalog: unknown category %q", cat)
		}
		bucket := make(map[string]SeriesDefinition, len(defs))
		for slug, def := range defs {
			def.Category = category
			bucket[slug] = def
		}
		c.byCategory[category] = bucket
	}

	// Flatten once with a stable iteration order so scans are deterministic.
	for _, category := range models.Categories() {
		slugs := make([]string, 0, len(c.byCategory[category]))
		for slug := range c.byCategory[category] {
			slugs = append(slugs, slug)
		}
		sort.Strings(slugs)
		for _, slug := range slugs {
			c.entries = append(c.entries, Entry{
				Slug:       slug,
				Category:   category,
				Definition: c.byCategory[category][slug],
			})
		}
	}
	return c, nil
}

// LoadDefault loads the embedded dataset.
func LoadDefault() (*Catalog, error) {
	return Load(defaultData)
}

// LoadFile loads a replacement dataset from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read series catalog %s: %w", path, err)
	}
	return Load(data)
}

// Len returns the total number of series across all categories.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// AllEntries returns every catalog entry in stable order (category, then
// slug). The returned slice is shared; callers must not modify it.
func (c *Catalog) AllEntries() []Entry {
	return c.entries
}

// ByCategory returns the entries of one category in slug order.
func (c *Catalog) ByCategory(category models.Category) []Entry {
	var out []Entry
	for _, e := range c.entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// FindBySlug looks up a definition directly by category and slug.
func (c *Catalog) FindBySlug(category models.Category, slug string) (SeriesDefinition, bool) {
	def, ok := c.byCategory[category][slug]
	return def, ok
}

// FindByNormalizedName scans every entry and returns the best entry whose
// canonical name or any variation fuzzy-matches name at or above threshold.
func (c *Catalog) FindByNormalizedName(name string, threshold int) (Entry, int, bool) {
	var best Entry
	bestScore := 0
	for _, e := range c.entries {
		score := similarity.FuzzyScore(name, e.Definition.Name)
		for _, v := range e.Definition.Variations {
			if s := similarity.FuzzyScore(name, v); s > score {
				score = s
			}
		}
		if score >= threshold && score > bestScore {
			best = e
			bestScore = score
		}
	}
	return best, bestScore, bestScore > 0
}
