// file: internal/detector/strategies.go
// version: 1.5.0
// guid: 6a0c2e4f-1b8d-43a7-95f2-3d6e9b0c7a41

package detector

import (
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/booktime/booktime/internal/catalog"
	"github.com/booktime/booktime/internal/models"
	"github.com/booktime/booktime/internal/similarity"
)

// explicitFieldStrategy trusts a non-empty saga field unconditionally.
type explicitFieldStrategy struct{}

func (explicitFieldStrategy) Name() string { return "explicit_field" }

func (explicitFieldStrategy) Attempt(book models.Book) (*models.DetectionResult, bool) {
	saga := strings.TrimSpace(book.Saga)
	if saga == "" {
		return nil, false
	}
	return &models.DetectionResult{
		BelongsToSeries: true,
		SeriesName:      saga,
		Confidence:      100,
		Method:          models.MethodExplicitField,
	}, true
}

// patternRule is one high-confidence title rule. When authorAliases is
// non-empty and the book author corroborates one of them, confidence rises
// from 85 to 95.
type patternRule struct {
	pattern       *regexp.Regexp
	series        string
	authorAliases []string
}

var defaultPatternRules = []patternRule{
	{regexp.MustCompile(`(?i)harry\s*potter`), "Harry Potter", []string{"rowling", "j.k. rowling"}},
	{regexp.MustCompile(`(?i)seigneur\s+des\s+anneaux|lord\s+of\s+the\s+rings`), "Le Seigneur des Anneaux", []string{"tolkien", "j.r.r. tolkien"}},
	{regexp.MustCompile(`(?i)ast[ée]rix`), "Astérix", []string{"goscinny", "uderzo"}},
	{regexp.MustCompile(`(?i)\btintin\b`), "Les Aventures de Tintin", []string{"hergé", "herge"}},
	{regexp.MustCompile(`(?i)one\s*piece`), "One Piece", []string{"oda", "eiichiro oda"}},
	{regexp.MustCompile(`(?i)\bnaruto\b`), "Naruto", []string{"kishimoto"}},
	{regexp.MustCompile(`(?i)dragon\s*ball`), "Dragon Ball", []string{"toriyama"}},
	{regexp.MustCompile(`(?i)game\s+of\s+thrones|tr[ôo]ne\s+de\s+fer`), "Le Trône de Fer", []string{"martin", "george r.r. martin"}},
}

// numberedTitle spots explicit volume numbering ("Tome 3", "Vol. 2", "#4")
// and treats the leading part of the title as the series name.
var numberedTitle = regexp.MustCompile(`(?i)^(.{3,}?)[\s,:-]+(?:tome|vol(?:ume)?\.?|t\.?|#)\s*\d+`)

type patternStrategy struct {
	rules []patternRule
}

func (patternStrategy) Name() string { return "title_pattern" }

func (p patternStrategy) Attempt(book models.Book) (*models.DetectionResult, bool) {
	title := strings.TrimSpace(book.Title)
	if title == "" {
		return nil, false
	}

	for _, rule := range p.rules {
		if !rule.pattern.MatchString(title) {
			continue
		}
		res := &models.DetectionResult{
			BelongsToSeries: true,
			SeriesName:      rule.series,
			Confidence:      85,
			Method:          models.MethodTitlePattern,
		}
		if authorMatchesAlias(book.Author, rule.authorAliases) {
			res.Confidence = 95
			res.Method = models.MethodTitleAuthorPattern
		}
		return res, true
	}

	if m := numberedTitle.FindStringSubmatch(title); m != nil {
		series := strings.TrimSpace(m[1])
		if series != "" {
			return &models.DetectionResult{
				BelongsToSeries: true,
				SeriesName:      series,
				Confidence:      85,
				Method:          models.MethodTitlePattern,
			}, true
		}
	}
	return nil, false
}

// authorMatchesAlias corroborates the book author against a rule's alias
// list, tolerating accents and partial forms.
func authorMatchesAlias(author string, aliases []string) bool {
	na := similarity.Normalize(author)
	if na == "" {
		return false
	}
	for _, alias := range aliases {
		nAlias := similarity.Normalize(alias)
		if strings.Contains(na, nAlias) || fuzzy.MatchNormalizedFold(nAlias, na) {
			return true
		}
		if similarity.FuzzyScore(na, nAlias) >= 60 {
			return true
		}
	}
	return false
}

// catalogStrategy scans the full series catalog: canonical name with author
// corroboration, then spelling variations, then keyword containment. The
// first matching definition in catalog order wins.
type catalogStrategy struct {
	catalog *catalog.Catalog
}

func (catalogStrategy) Name() string { return "catalog" }

func (c catalogStrategy) Attempt(book models.Book) (*models.DetectionResult, bool) {
	if c.catalog == nil {
		return nil, false
	}
	title := similarity.Normalize(book.Title)
	if title == "" {
		return nil, false
	}
	author := similarity.Normalize(book.Author)

	for _, entry := range c.catalog.AllEntries() {
		def := entry.Definition
		if excludedTitle(title, def.Exclusions) {
			continue
		}

		if nameScore := similarity.FuzzyScore(title, def.Name); nameScore >= 70 {
			if author == "" {
				return &models.DetectionResult{
					BelongsToSeries: true,
					SeriesName:      def.Name,
					Confidence:      nameScore,
					Method:          models.MethodCatalogTitle,
				}, true
			}
			if bestAuthorScore(author, def.Authors) >= 60 {
				return &models.DetectionResult{
					BelongsToSeries: true,
					SeriesName:      def.Name,
					Confidence:      min(nameScore+10, 100),
					Method:          models.MethodCatalogTitleAuthor,
				}, true
			}
		}

		for _, v := range def.Variations {
			if score := similarity.FuzzyScore(title, v); score >= 70 {
				return &models.DetectionResult{
					BelongsToSeries: true,
					SeriesName:      def.Name,
					Confidence:      score,
					Method:          models.MethodCatalogVariation,
				}, true
			}
		}

		for _, kw := range def.Keywords {
			if nkw := similarity.Normalize(kw); nkw != "" && strings.Contains(title, nkw) {
				return &models.DetectionResult{
					BelongsToSeries: true,
					SeriesName:      def.Name,
					Confidence:      80,
					Method:          models.MethodCatalogKeyword,
				}, true
			}
		}
	}
	return nil, false
}

func excludedTitle(normalizedTitle string, exclusions []string) bool {
	for _, ex := range exclusions {
		if nex := similarity.Normalize(ex); nex != "" && strings.Contains(normalizedTitle, nex) {
			return true
		}
	}
	return false
}

func bestAuthorScore(normalizedAuthor string, authors []string) int {
	best := 0
	for _, a := range authors {
		na := similarity.Normalize(a)
		if na == "" {
			continue
		}
		if strings.Contains(normalizedAuthor, na) || strings.Contains(na, normalizedAuthor) {
			return 100
		}
		if s := similarity.FuzzyScore(normalizedAuthor, na); s > best {
			best = s
		}
	}
	return best
}
