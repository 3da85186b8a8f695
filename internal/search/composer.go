// file: internal/search/composer.go
// version: 1.4.0
// guid: 2f6a8c0e-4d1b-47f5-b3a9-8e0c5d2f7b61

// Package search turns a raw remote search response plus the user's own
// library into one ordered result list: series cards for every catalog or
// library series the query names, plain scored books for everything else,
// with individual volumes of a detected series masked behind their card.
package search

import (
	"sort"
	"strconv"
	"strings"

	"github.com/booktime/booktime/internal/catalog"
	"github.com/booktime/booktime/internal/detector"
	"github.com/booktime/booktime/internal/models"
	"github.com/booktime/booktime/internal/relevance"
	"github.com/booktime/booktime/internal/similarity"
)

// Thresholds and confidence bands for card generation.
const (
	officialCardThreshold = 60
	libraryCardThreshold  = 50

	officialCardBase = 100000
	libraryCardBase  = 90000
)

// Weight profiles: canonical names and variations count for more than
// keyword hits when matching the query against a catalog entry.
var (
	nameWeights    = similarity.Weights{Exact: 1.0, Fuzzy: 0.95, Partial: 0.75, Transpose: 0.65, Phonetic: 0.5}
	keywordWeights = similarity.Weights{Exact: 0.8, Fuzzy: 0.7, Partial: 0.5, Transpose: 0.4, Phonetic: 0.3}
)

// Composer orchestrates catalog matching, detection, scoring and sorting.
type Composer struct {
	catalog  *catalog.Catalog
	detector *detector.Detector
	scorer   *relevance.Scorer
}

// NewComposer wires the composer with its collaborators.
func NewComposer(cat *catalog.Catalog, det *detector.Detector, scorer *relevance.Scorer) *Composer {
	return &Composer{catalog: cat, detector: det, scorer: scorer}
}

// Compose builds the final ordered result list for one search. An empty or
// whitespace-only query short-circuits to an empty list without touching the
// catalog. The output length is never truncated here; pagination is a UI
// concern.
func (c *Composer) Compose(query string, remoteResults, userLibrary []models.Book) []models.ComposedResult {
	nq := similarity.Normalize(query)
	if nq == "" {
		return []models.ComposedResult{}
	}

	results := make([]models.ComposedResult, 0, len(remoteResults)+4)

	officialCards := c.officialSeriesCards(query)
	for i := range officialCards {
		results = append(results, models.ComposedResult{IsSeriesCard: true, Card: &officialCards[i]})
	}

	libraryCards := c.librarySeriesCards(query, userLibrary, officialCards)
	for i := range libraryCards {
		results = append(results, models.ComposedResult{IsSeriesCard: true, Card: &libraryCards[i]})
	}

	cardNames := make(map[string]bool, len(officialCards)+len(libraryCards))
	for _, card := range officialCards {
		cardNames[similarity.Normalize(card.Name)] = true
	}
	for _, card := range libraryCards {
		cardNames[similarity.Normalize(card.Name)] = true
	}

	annotated := c.annotateRemote(remoteResults, userLibrary)
	visible, _ := c.maskAnnotated(annotated)
	for i := range visible {
		visible[i].Relevance = c.scorer.Score(visible[i].Book, query)
		results = append(results, models.ComposedResult{Book: &visible[i]})
	}

	for _, b := range c.matchingLibraryBooks(query, userLibrary, cardNames) {
		ab := b
		results = append(results, models.ComposedResult{Book: &ab})
	}

	// Two-key sort: cards before plain books, then score descending. The
	// 90000+/100000+ card confidence bands make the numeric comparison agree
	// with the explicit flag, but the flag is what we sort on.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].IsSeriesCard != results[j].IsSeriesCard {
			return results[i].IsSeriesCard
		}
		return results[i].EffectiveScore() > results[j].EffectiveScore()
	})
	return results
}

// officialSeriesCards matches the query itself against every catalog entry
// and emits a card per match in the 100000+ confidence band.
func (c *Composer) officialSeriesCards(query string) []models.SeriesCard {
	if c.catalog == nil {
		return nil
	}
	var cards []models.SeriesCard
	for _, entry := range c.catalog.AllEntries() {
		def := entry.Definition
		score, matchType := 0, ""

		if s := similarity.CombinedScore(query, def.Name, nameWeights); s > score {
			score, matchType = s, "name"
		}
		for _, v := range def.Variations {
			if s := similarity.CombinedScore(query, v, nameWeights); s > score {
				score, matchType = s, "variation"
			}
		}
		for _, t := range def.Translations {
			if s := similarity.CombinedScore(query, t, nameWeights); s > score {
				score, matchType = s, "translation"
			}
		}
		for _, kw := range def.Keywords {
			if s := similarity.CombinedScore(query, kw, keywordWeights); s > score {
				score, matchType = s, "keyword"
			}
		}

		if score < officialCardThreshold {
			continue
		}
		cards = append(cards, models.SeriesCard{
			IsSeriesCard: true,
			Name:         def.Name,
			Author:       strings.Join(def.Authors, ", "),
			Category:     def.Category,
			Description:  cardDescription(def),
			Confidence:   officialCardBase + score,
			MatchType:    matchType,
			SourceType:   models.SourceOfficial,
			VolumeCount:  def.VolumeCount,
		})
	}
	return cards
}

// librarySeriesCards groups the user's own books by saga and emits one card
// per saga fuzzy-matching the query, in the 90000+ band. Sagas already
// represented by an official card are skipped.
func (c *Composer) librarySeriesCards(query string, library []models.Book, official []models.SeriesCard) []models.SeriesCard {
	officialNames := make(map[string]bool, len(official))
	for _, card := range official {
		officialNames[similarity.Normalize(card.Name)] = true
	}

	type group struct {
		card    models.SeriesCard
		authors map[string]bool
	}
	groups := make(map[string]*group)
	var order []string

	for _, b := range library {
		saga := strings.TrimSpace(b.Saga)
		if saga == "" {
			continue
		}
		nsaga := similarity.Normalize(saga)
		if officialNames[nsaga] {
			continue
		}
		score := similarity.FuzzyScore(query, saga)
		if score < libraryCardThreshold {
			if s := similarity.PartialWordScore(query, saga); s >= libraryCardThreshold {
				score = s
			} else {
				continue
			}
		}

		g, ok := groups[nsaga]
		if !ok {
			g = &group{
				card: models.SeriesCard{
					IsSeriesCard: true,
					Name:         saga,
					Category:     b.Category,
					Confidence:   libraryCardBase + score,
					MatchType:    "saga",
					SourceType:   models.SourceUserLibrary,
				},
				authors: make(map[string]bool),
			}
			groups[nsaga] = g
			order = append(order, nsaga)
		}
		g.card.VolumeCount++
		if g.card.Confidence < libraryCardBase+score {
			g.card.Confidence = libraryCardBase + score
		}
		if b.Author != "" && !g.authors[b.Author] {
			g.authors[b.Author] = true
			if g.card.Author != "" {
				g.card.Author += ", "
			}
			g.card.Author += b.Author
		}
	}

	cards := make([]models.SeriesCard, 0, len(groups))
	for _, key := range order {
		cards = append(cards, groups[key].card)
	}
	return cards
}

// annotateRemote attaches a category badge and an ownership flag to every
// remote result. Ownership matching tries, in order: external source key,
// ISBN, then normalized title+author equality or mutual containment.
func (c *Composer) annotateRemote(remote, library []models.Book) []models.AnnotatedBook {
	annotated := make([]models.AnnotatedBook, 0, len(remote))
	for _, b := range remote {
		badge := b.Category
		if !badge.Valid() {
			badge = models.CategoryRoman
		}
		ab := models.AnnotatedBook{Book: b, CategoryBadge: badge}
		if owned(b, library) {
			ab.IsOwned = true
		}
		annotated = append(annotated, ab)
	}
	return annotated
}

func owned(b models.Book, library []models.Book) bool {
	nt := similarity.Normalize(b.Title)
	na := similarity.Normalize(b.Author)
	for _, lb := range library {
		if b.ExternalKey != "" && b.ExternalKey == lb.ExternalKey {
			return true
		}
		if b.ISBN != "" && b.ISBN == lb.ISBN {
			return true
		}
		lt := similarity.Normalize(lb.Title)
		la := similarity.Normalize(lb.Author)
		if nt == "" || lt == "" {
			continue
		}
		titleMatch := nt == lt || strings.Contains(nt, lt) || strings.Contains(lt, nt)
		authorMatch := na == la || (na != "" && la != "" && (strings.Contains(na, la) || strings.Contains(la, na)))
		if titleMatch && authorMatch {
			return true
		}
	}
	return false
}

// maskAnnotated drops books that the detector places in a known series at
// masking confidence; those are presumed represented by a series card.
func (c *Composer) maskAnnotated(books []models.AnnotatedBook) (visible, masked []models.AnnotatedBook) {
	for _, ab := range books {
		res := c.detector.Detect(ab.Book)
		if res.BelongsToSeries && res.Confidence >= detector.DefaultMaskConfidence {
			masked = append(masked, ab)
		} else {
			visible = append(visible, ab)
		}
	}
	return visible, masked
}

// matchingLibraryBooks surfaces already-owned books that match the query and
// are not folded into a series card.
func (c *Composer) matchingLibraryBooks(query string, library []models.Book, cardNames map[string]bool) []models.AnnotatedBook {
	var out []models.AnnotatedBook
	for _, b := range library {
		if nsaga := similarity.Normalize(b.Saga); nsaga != "" && cardNames[nsaga] {
			continue
		}
		score := c.scorer.Score(b, query)
		if score <= 0 {
			continue
		}
		badge := b.Category
		if !badge.Valid() {
			badge = models.CategoryRoman
		}
		ab := models.AnnotatedBook{Book: b, CategoryBadge: badge, Relevance: score}
		ab.IsOwned = true
		out = append(out, ab)
	}
	return out
}

func cardDescription(def catalog.SeriesDefinition) string {
	var b strings.Builder
	b.WriteString("Série")
	if len(def.Authors) > 0 {
		b.WriteString(" de ")
		b.WriteString(strings.Join(def.Authors, ", "))
	}
	if def.VolumeCount > 0 {
		b.WriteString(", ")
		b.WriteString(volumeLabel(def.VolumeCount))
	}
	return b.String()
}

func volumeLabel(n int) string {
	if n == 1 {
		return "1 tome"
	}
	return strconv.Itoa(n) + " tomes"
}
