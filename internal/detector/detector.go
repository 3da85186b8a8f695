// file: internal/detector/detector.go
// version: 1.4.0
// guid: 1d7f3b5e-8a2c-46d9-b0e4-7f5a1c8d3e96

// Package detector decides whether a single book belongs to a known series.
// Detection is a cascade of strategies tried in order: the explicit saga
// field, high-confidence title patterns for extremely well-known series, and
// finally a fuzzy scan of the full series catalog. The first strategy that
// produces a result wins.
package detector

import (
	"github.com/booktime/booktime/internal/catalog"
	"github.com/booktime/booktime/internal/models"
)

// DefaultMaskConfidence is the minimum confidence at which a detected series
// member is hidden behind its series card.
const DefaultMaskConfidence = 70

// Strategy is one detection approach. Attempt returns (result, true) when the
// strategy can decide series membership for the book, (nil, false) to pass
// the book to the next strategy.
type Strategy interface {
	Name() string
	Attempt(book models.Book) (*models.DetectionResult, bool)
}

// Detector runs the strategy cascade.
type Detector struct {
	strategies []Strategy
}

// New builds the standard cascade backed by the given catalog.
func New(cat *catalog.Catalog) *Detector {
	return &Detector{
		strategies: []Strategy{
			explicitFieldStrategy{},
			patternStrategy{rules: defaultPatternRules},
			catalogStrategy{catalog: cat},
		},
	}
}

// NewWithStrategies builds a detector with a custom cascade, ordered.
func NewWithStrategies(strategies ...Strategy) *Detector {
	return &Detector{strategies: strategies}
}

// Detect runs the cascade on one book. Never returns nil; when nothing
// matches the result carries MethodNone with zero confidence.
func (d *Detector) Detect(book models.Book) models.DetectionResult {
	for _, s := range d.strategies {
		if res, ok := s.Attempt(book); ok && res != nil {
			return *res
		}
	}
	return models.DetectionResult{
		BelongsToSeries: false,
		Confidence:      0,
		Method:          models.MethodNone,
	}
}

// MaskSeriesMembers partitions books into those that remain visible and
// those hidden because they belong to a detected series at or above
// minConfidence. Re-running on an already-filtered visible list removes
// nothing further.
func (d *Detector) MaskSeriesMembers(books []models.Book, minConfidence int) (visible, masked []models.Book) {
	for _, b := range books {
		res := d.Detect(b)
		if res.BelongsToSeries && res.Confidence >= minConfidence {
			masked = append(masked, b)
		} else {
			visible = append(visible, b)
		}
	}
	return visible, masked
}
