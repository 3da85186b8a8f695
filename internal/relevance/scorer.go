// file: internal/relevance/scorer.go
// version: 1.3.0
// guid: 7c1e3a5d-0f4b-42c8-a9e6-2b8d5f0c4e17

// Package relevance ranks plain (non series-card) search results for one
// query. Scores are additive bonuses on top of a single base term, floored
// at zero, and only comparable within one search call.
package relevance

import (
	"math"
	"strings"

	"github.com/booktime/booktime/internal/models"
	"github.com/booktime/booktime/internal/similarity"
)

// Base score magnitudes.
const (
	baseExactTitle     = 35000
	basePrefixTitle    = 25000
	baseSubstringTitle = 18000

	blockbusterFloorHigh = 40000
	blockbusterFloorMid  = 30000
	blockbusterFloorLow  = 20000

	genericPopularBonus = 8000
	localLibraryBonus   = 3000
	ownedRemoteBonus    = 1500
	coverBonus          = 500
	pageCountBonus      = 300

	missingAuthorPenalty = 2000
	missingTitlePenalty  = 3000
)

// Scorer computes relevance scores. Stateless and safe for concurrent use.
type Scorer struct{}

// NewScorer returns a Scorer.
func NewScorer() *Scorer { return &Scorer{} }

// Score returns a non-negative ranking score for book against query.
// An empty or whitespace-only query always scores 0.
func (s *Scorer) Score(book models.Book, query string) int {
	nq := similarity.Normalize(query)
	if nq == "" {
		return 0
	}

	nt := similarity.Normalize(book.Title)
	na := similarity.Normalize(book.Author)
	nsaga := similarity.Normalize(book.Saga)

	score := 0.0
	blockbusterFired := false

	if bb, tier := matchBlockbuster(nq, book, nt, na, nsaga); bb != nil {
		blockbusterFired = true
		switch {
		case tier >= 100:
			score += blockbusterFloorHigh + float64(bb.Weight)
		case tier >= 80:
			score += blockbusterFloorMid + float64(bb.Weight)*0.8
		default:
			score += blockbusterFloorLow + float64(bb.Weight)*0.5
		}
	} else {
		score += float64(titleBase(nq, nt))
	}

	score += float64(fieldBonus(nq, na, 10000, 6000, 3000))
	score += float64(fieldBonus(nq, nsaga, 8000, 5000, 2000))

	if !blockbusterFired {
		combined := strings.TrimSpace(nt + " " + nsaga + " " + na)
		for _, kw := range popularKeywords {
			if strings.Contains(combined, kw) {
				score += genericPopularBonus
				break
			}
		}
	}

	score += float64(recencyBonus(book.PublicationYear))
	if book.CoverURL != "" {
		score += coverBonus
	}
	if book.NumberOfPages >= 100 && book.NumberOfPages <= 800 {
		score += pageCountBonus
	}

	if !book.IsFromOpenLibrary {
		score += localLibraryBonus
	} else if book.IsOwned {
		score += ownedRemoteBonus
	}

	if na == "" {
		score -= missingAuthorPenalty
	}
	if nt == "" {
		score -= missingTitlePenalty
	}

	if score < 0 {
		return 0
	}
	return int(math.Round(score))
}

// titleBase is the classical text-match base against the title.
func titleBase(nq, nt string) int {
	if nt == "" {
		return 0
	}
	if nt == nq {
		return baseExactTitle
	}
	if strings.Contains(nt, nq) {
		if strings.HasPrefix(nt, nq) {
			return basePrefixTitle
		}
		return baseSubstringTitle
	}

	queryWords := strings.Fields(nq)
	if len(queryWords) > 1 {
		found := 0
		for _, w := range queryWords {
			if strings.Contains(nt, w) {
				found++
			}
		}
		ratio := float64(found) / float64(len(queryWords))
		switch {
		case ratio >= 1.0:
			return 15000
		case ratio >= 0.8:
			return 12000
		case ratio >= 0.6:
			return 8000
		case ratio >= 0.4:
			return 5000
		}
		return 0
	}

	// Single-word query.
	w := queryWords[0]
	if strings.HasPrefix(nt, w) {
		return 8000
	}
	for _, tw := range strings.Fields(nt) {
		if tw == w {
			return 6000
		}
	}
	if strings.Contains(nt, w) {
		return 4000
	}
	return 0
}

// fieldBonus scores a secondary field by exact/prefix/substring tiers.
func fieldBonus(nq, field string, exact, prefix, substring int) int {
	if field == "" || nq == "" {
		return 0
	}
	if field == nq {
		return exact
	}
	if strings.HasPrefix(field, nq) {
		return prefix
	}
	if strings.Contains(field, nq) {
		return substring
	}
	return 0
}

// recencyBonus rewards recent publication years.
func recencyBonus(year int) int {
	switch {
	case year >= 2020:
		return 1000
	case year >= 2015:
		return 800
	case year >= 2010:
		return 600
	case year >= 2000:
		return 400
	case year >= 1990:
		return 200
	default:
		return 0
	}
}

// matchBlockbuster returns the blockbuster entry the query refers to, if
// any, together with the book's membership-confirmation tier. The tier sums
// weighted signals: saga containment 100, author containment 90, category
// match 20, keyword hits 25 each, variation in title 70 plus 50 when the
// title starts with or equals the variation. Below 50 the match is rejected.
func matchBlockbuster(nq string, book models.Book, nt, na, nsaga string) (*blockbusterSeries, int) {
	for i := range blockbusters {
		bb := &blockbusters[i]
		if !queryNamesSeries(nq, bb) {
			continue
		}

		tier := 0
		nname := similarity.Normalize(bb.Name)
		if nsaga != "" && (strings.Contains(nsaga, nname) || strings.Contains(nname, nsaga)) {
			tier += 100
		}
		for _, author := range bb.Authors {
			if naut := similarity.Normalize(author); naut != "" && na != "" &&
				(strings.Contains(na, naut) || strings.Contains(naut, na)) {
				tier += 90
				break
			}
		}
		if bb.Category != "" && bb.Category == book.Category {
			tier += 20
		}
		for _, kw := range bb.Keywords {
			if nkw := similarity.Normalize(kw); nkw != "" && strings.Contains(nt, nkw) {
				tier += 25
			}
		}
		for _, v := range bb.Variations {
			nv := similarity.Normalize(v)
			if nv == "" || !strings.Contains(nt, nv) {
				continue
			}
			tier += 70
			if nt == nv || strings.HasPrefix(nt, nv) {
				tier += 50
			}
			break
		}
		if strings.Contains(nt, nname) {
			tier += 70
			if nt == nname || strings.HasPrefix(nt, nname) {
				tier += 50
			}
		}

		if tier >= 50 {
			return bb, tier
		}
	}
	return nil, 0
}

// queryNamesSeries decides whether the query refers to this blockbuster.
func queryNamesSeries(nq string, bb *blockbusterSeries) bool {
	nname := similarity.Normalize(bb.Name)
	if nname == "" {
		return false
	}
	if strings.Contains(nq, nname) {
		return true
	}
	if len(nq) >= 4 && strings.Contains(nname, nq) {
		return true
	}
	if similarity.FuzzyScore(nq, nname) >= 75 {
		return true
	}
	for _, v := range bb.Variations {
		nv := similarity.Normalize(v)
		if nv == "" {
			continue
		}
		if strings.Contains(nq, nv) || (len(nq) >= 4 && strings.Contains(nv, nq)) {
			return true
		}
		if similarity.FuzzyScore(nq, nv) >= 75 {
			return true
		}
	}
	return false
}
