// file: internal/detector/detector_test.go
// version: 1.2.0
// guid: 4c9e2a7d-6f1b-48d3-a5e0-8b3f7c1d9e52

package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booktime/booktime/internal/catalog"
	"github.com/booktime/booktime/internal/models"
)

func newTestDetector(t *testing.T) *Detector {
	t.Helper()
	cat, err := catalog.LoadDefault()
	require.NoError(t, err)
	return New(cat)
}

func TestDetect_ExplicitField(t *testing.T) {
	d := newTestDetector(t)

	res := d.Detect(models.Book{Title: "Some Random Title", Saga: "One Piece"})
	assert.True(t, res.BelongsToSeries)
	assert.Equal(t, "One Piece", res.SeriesName)
	assert.Equal(t, 100, res.Confidence)
	assert.Equal(t, models.MethodExplicitField, res.Method)

	// Whitespace-only saga does not count as explicit.
	res = d.Detect(models.Book{Title: "Dune", Saga: "   "})
	assert.NotEqual(t, models.MethodExplicitField, res.Method)
}

func TestDetect_TitlePattern(t *testing.T) {
	d := newTestDetector(t)

	tests := []struct {
		name       string
		book       models.Book
		wantSeries string
		wantConf   int
		wantMethod models.MatchMethod
	}{
		{
			name:       "pattern with corroborating author",
			book:       models.Book{Title: "Harry Potter et la Chambre des Secrets", Author: "J.K. Rowling"},
			wantSeries: "Harry Potter",
			wantConf:   95,
			wantMethod: models.MethodTitleAuthorPattern,
		},
		{
			name:       "pattern without author",
			book:       models.Book{Title: "Harry Potter et la Chambre des Secrets"},
			wantSeries: "Harry Potter",
			wantConf:   85,
			wantMethod: models.MethodTitlePattern,
		},
		{
			name:       "pattern with unrelated author stays at 85",
			book:       models.Book{Title: "Harry Potter et la Chambre des Secrets", Author: "Victor Hugo"},
			wantSeries: "Harry Potter",
			wantConf:   85,
			wantMethod: models.MethodTitlePattern,
		},
		{
			name:       "accented pattern",
			book:       models.Book{Title: "Astérix chez les Bretons"},
			wantSeries: "Astérix",
			wantConf:   85,
			wantMethod: models.MethodTitlePattern,
		},
		{
			name:       "numbered title yields leading part as series",
			book:       models.Book{Title: "Les Annales du Disque-Monde, Tome 3"},
			wantSeries: "Les Annales du Disque-Monde",
			wantConf:   85,
			wantMethod: models.MethodTitlePattern,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := d.Detect(tt.book)
			require.True(t, res.BelongsToSeries)
			assert.Equal(t, tt.wantSeries, res.SeriesName)
			assert.Equal(t, tt.wantConf, res.Confidence)
			assert.Equal(t, tt.wantMethod, res.Method)
		})
	}
}

func TestDetect_CatalogScan(t *testing.T) {
	d := newTestDetector(t)

	// Exact catalog name plus matching author caps at 100.
	res := d.Detect(models.Book{Title: "Dune", Author: "Frank Herbert"})
	require.True(t, res.BelongsToSeries)
	assert.Equal(t, "Dune", res.SeriesName)
	assert.Equal(t, 100, res.Confidence)
	assert.Equal(t, models.MethodCatalogTitleAuthor, res.Method)

	// Same title without author matches on name alone.
	res = d.Detect(models.Book{Title: "Dune"})
	require.True(t, res.BelongsToSeries)
	assert.Equal(t, models.MethodCatalogTitle, res.Method)
	assert.Equal(t, 100, res.Confidence)

	// Keyword containment sits at fixed confidence 80.
	res = d.Detect(models.Book{Title: "La Guerre d'Arrakis"})
	require.True(t, res.BelongsToSeries)
	assert.Equal(t, "Dune", res.SeriesName)
	assert.Equal(t, 80, res.Confidence)
	assert.Equal(t, models.MethodCatalogKeyword, res.Method)
}

func TestDetect_Exclusions(t *testing.T) {
	d := newTestDetector(t)

	// The Hobbit must not be swallowed by the Lord of the Rings entry.
	res := d.Detect(models.Book{Title: "The Hobbit", Author: "J.R.R. Tolkien"})
	assert.False(t, res.BelongsToSeries)
	assert.Equal(t, models.MethodNone, res.Method)
	assert.Equal(t, 0, res.Confidence)
}

func TestDetect_NoMatch(t *testing.T) {
	d := newTestDetector(t)

	for _, title := range []string{"", "Sapiens", "A Brief History of Time"} {
		res := d.Detect(models.Book{Title: title, Author: "Somebody"})
		assert.False(t, res.BelongsToSeries, "title %q", title)
		assert.Equal(t, models.MethodNone, res.Method)
	}
}

func TestNewWithStrategies_Order(t *testing.T) {
	// A custom cascade without the explicit-field strategy ignores the saga.
	cat, err := catalog.LoadDefault()
	require.NoError(t, err)
	d := NewWithStrategies(catalogStrategy{catalog: cat})

	res := d.Detect(models.Book{Title: "Dune", Saga: "Made Up Series"})
	require.True(t, res.BelongsToSeries)
	assert.Equal(t, "Dune", res.SeriesName)
}

func TestMaskSeriesMembers(t *testing.T) {
	d := newTestDetector(t)

	books := []models.Book{
		{Title: "Harry Potter et la Coupe de Feu", Author: "J.K. Rowling"},
		{Title: "Sapiens", Author: "Yuval Noah Harari"},
		{Title: "One Piece Tome 12", Saga: "One Piece"},
	}

	visible, masked := d.MaskSeriesMembers(books, DefaultMaskConfidence)
	require.Len(t, visible, 1)
	require.Len(t, masked, 2)
	assert.Equal(t, "Sapiens", visible[0].Title)

	// Masking an already-filtered list removes nothing further.
	again, none := d.MaskSeriesMembers(visible, DefaultMaskConfidence)
	assert.Equal(t, visible, again)
	assert.Empty(t, none)
}

func TestMaskSeriesMembers_Threshold(t *testing.T) {
	d := newTestDetector(t)

	// At a threshold above 85 a pattern match without author stays visible.
	books := []models.Book{{Title: "Astérix chez les Bretons"}}
	visible, masked := d.MaskSeriesMembers(books, 90)
	assert.Len(t, visible, 1)
	assert.Empty(t, masked)
}
