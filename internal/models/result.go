// file: internal/models/result.go
// version: 1.2.0
// guid: 8f1a4d7c-2e5b-49a0-b6d3-0c7e9f2a5b14

package models

// MatchMethod identifies which detection strategy produced a result.
type MatchMethod string

const (
	MethodExplicitField      MatchMethod = "explicit_field"
	MethodTitlePattern       MatchMethod = "title_pattern"
	MethodTitleAuthorPattern MatchMethod = "title_author_pattern"
	MethodCatalogTitle       MatchMethod = "catalog_title"
	MethodCatalogTitleAuthor MatchMethod = "catalog_title_author"
	MethodCatalogVariation   MatchMethod = "catalog_variation"
	MethodCatalogKeyword     MatchMethod = "catalog_keyword"
	MethodNone               MatchMethod = "no_series_detected"
)

// DetectionResult is the outcome of running series detection on one book.
// Confidence is on a 0-100 scale; an explicit saga field is always 100.
type DetectionResult struct {
	BelongsToSeries bool        `json:"belongsToSeries"`
	SeriesName      string      `json:"seriesName,omitempty"`
	Confidence      int         `json:"confidence"`
	Method          MatchMethod `json:"method"`
}

// Card source types.
const (
	SourceOfficial    = "official"
	SourceUserLibrary = "user_library"
)

// SeriesCard is a synthetic search result representing a whole series.
// Confidence lives in the 100000+ range for catalog matches and the 90000+
// range for cards derived from the user's own library, which keeps every
// card numerically above any individually scored book.
type SeriesCard struct {
	IsSeriesCard bool     `json:"isSeriesCard"`
	Name         string   `json:"name"`
	Author       string   `json:"author"`
	Category     Category `json:"category"`
	Description  string   `json:"description,omitempty"`
	Confidence   int      `json:"confidence"`
	MatchType    string   `json:"matchType"`
	SourceType   string   `json:"sourceType"`
	VolumeCount  int      `json:"volumeCount,omitempty"`
}

// AnnotatedBook is a plain search result: the book plus the display badge,
// ownership flag and relevance score the composer attached to it.
type AnnotatedBook struct {
	Book
	CategoryBadge Category `json:"categoryBadge"`
	Relevance     int      `json:"relevance"`
}

// ComposedResult is one entry of a composed search result list: either a
// series card or an annotated book, never both.
type ComposedResult struct {
	IsSeriesCard bool           `json:"isSeriesCard"`
	Card         *SeriesCard    `json:"card,omitempty"`
	Book         *AnnotatedBook `json:"book,omitempty"`
}

// EffectiveScore returns the value used for ordering within each group:
// card confidence for series cards, relevance for plain books.
func (r ComposedResult) EffectiveScore() int {
	if r.IsSeriesCard && r.Card != nil {
		return r.Card.Confidence
	}
	if r.Book != nil {
		return r.Book.Relevance
	}
	return 0
}
