// file: internal/similarity/similarity.go
// version: 1.3.0
// guid: 5b8d2f0a-9c3e-41d7-8a6f-4e1b7c0d9a52

// Package similarity scores how close two free-text strings are on a 0-100
// scale. It combines edit distance, partial word containment, a Soundex-like
// phonetic code and adjacent-transposition detection; CombinedScore keeps the
// single strongest weighted signal rather than summing, so weak partial
// matches cannot stack past a strong direct match.
package similarity

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxErrors is the edit-distance cutoff used by FuzzyScore.
const DefaultMaxErrors = 4

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases s, strips diacritics, replaces punctuation with
// spaces and collapses runs of whitespace. Idempotent; Normalize("") == "".
func Normalize(s string) string {
	s = strings.ToLower(s)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// levenshtein computes the classic insert/delete/substitute distance between
// two already-normalized strings using a single-row DP table.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}
	curr := make([]int, lb+1)
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, min(prev[j]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

// EditDistance returns the Levenshtein distance between the normalized forms
// of a and b. Transpositions are not discounted here; see TransposeScore.
func EditDistance(a, b string) int {
	return levenshtein(Normalize(a), Normalize(b))
}

// FuzzyScore scores a against b using DefaultMaxErrors.
func FuzzyScore(a, b string) int {
	return FuzzyScoreMax(a, b, DefaultMaxErrors)
}

// FuzzyScoreMax returns 100 for equal normalized strings, 0 when one side is
// empty or the edit distance exceeds maxErrors, and a length-scaled score in
// between.
func FuzzyScoreMax(a, b string, maxErrors int) int {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		if na == "" {
			return 0
		}
		return 100
	}
	if na == "" || nb == "" {
		return 0
	}
	dist := levenshtein(na, nb)
	if dist > maxErrors {
		return 0
	}
	maxLen := max(len([]rune(na)), len([]rune(nb)))
	return int(math.Round(float64(maxLen-dist) / float64(maxLen) * 100))
}

// phoneticDigits maps consonant classes to Soundex-style digits.
var phoneticDigits = map[rune]byte{
	'b': '1', 'p': '1',
	'f': '2', 'v': '2',
	'c': '3', 'g': '3', 'j': '3', 'k': '3', 'q': '3', 's': '3', 'x': '3', 'z': '3',
	'd': '4', 't': '4',
	'l': '5', 'r': '5',
	'm': '6', 'n': '6',
}

// PhoneticCode produces a 4-character Soundex-like code: vowels dropped,
// consonant classes mapped to digits, consecutive duplicates collapsed,
// padded with zeros.
func PhoneticCode(s string) string {
	code := make([]byte, 0, 4)
	var last byte
	for _, r := range Normalize(s) {
		d, ok := phoneticDigits[r]
		if !ok {
			continue
		}
		if d == last {
			continue
		}
		code = append(code, d)
		last = d
		if len(code) == 4 {
			break
		}
	}
	for len(code) < 4 {
		code = append(code, '0')
	}
	return string(code)
}

// PhoneticDistance is the edit distance between the phonetic codes of a and b.
func PhoneticDistance(a, b string) int {
	return levenshtein(PhoneticCode(a), PhoneticCode(b))
}

// PartialWordScore returns the percentage of query words (length > 1) that
// appear as substrings of the normalized target. Directional: swapping the
// arguments gives a different score.
func PartialWordScore(query, target string) int {
	nq, nt := Normalize(query), Normalize(target)
	if nq == "" || nt == "" {
		return 0
	}
	var total, found int
	for _, w := range strings.Fields(nq) {
		if len([]rune(w)) <= 1 {
			continue
		}
		total++
		if strings.Contains(nt, w) {
			found++
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(found) / float64(total) * 100))
}

// TransposeScore detects a single adjacent-character swap: 95 when one swap
// of a yields b exactly, 85 when a swap lands within edit distance 1, else 0.
// Skipped when the lengths differ by more than 2.
func TransposeScore(a, b string) int {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	ra := []rune(na)
	if d := len(ra) - len([]rune(nb)); d > 2 || d < -2 {
		return 0
	}
	near := false
	for i := 0; i+1 < len(ra); i++ {
		if ra[i] == ra[i+1] {
			continue
		}
		variant := make([]rune, len(ra))
		copy(variant, ra)
		variant[i], variant[i+1] = variant[i+1], variant[i]
		v := string(variant)
		if v == nb {
			return 95
		}
		if !near && levenshtein(v, nb) <= 1 {
			near = true
		}
	}
	if near {
		return 85
	}
	return 0
}

// Weights scales each sub-score before the strongest one is selected.
type Weights struct {
	Exact     float64
	Fuzzy     float64
	Partial   float64
	Transpose float64
	Phonetic  float64
}

// DefaultWeights order the signals from most to least trustworthy.
var DefaultWeights = Weights{
	Exact:     1.0,
	Fuzzy:     0.9,
	Partial:   0.7,
	Transpose: 0.6,
	Phonetic:  0.5,
}

const phoneticCodeLen = 4

// CombinedScore runs every sub-algorithm, gates each behind its minimum
// threshold (fuzzy >= 70, partial >= 50, phonetic distance <= 2, transpose
// > 0), applies the weights, and returns the strongest surviving candidate.
func CombinedScore(query, target string, w Weights) int {
	nq, nt := Normalize(query), Normalize(target)
	if nq == "" || nt == "" {
		return 0
	}

	best := 0.0
	if nq == nt {
		best = 100 * w.Exact
	}
	if s := FuzzyScore(query, target); s >= 70 {
		best = math.Max(best, float64(s)*w.Fuzzy)
	}
	if s := PartialWordScore(query, target); s >= 50 {
		best = math.Max(best, float64(s)*w.Partial)
	}
	if s := TransposeScore(query, target); s > 0 {
		best = math.Max(best, float64(s)*w.Transpose)
	}
	if d := PhoneticDistance(query, target); d <= 2 {
		s := float64(phoneticCodeLen-d) / phoneticCodeLen * 100
		best = math.Max(best, s*w.Phonetic)
	}

	if best <= 0 {
		return 0
	}
	return int(math.Round(best))
}
