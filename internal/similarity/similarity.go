// Package similarity implements the Similarity Calculator (spec §4.7): three
// field-specific scorers (title, author, publisher) each returning 0-100.
package similarity

import (
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/config"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/textnorm"
)

// Calculator holds the configuration a Similarity Calculator needs: stopword
// lists, abbreviation dictionaries, and the stemming toggle. Grounded on
// original_source similarity_calculator.py's SimilarityCalculator.
type Calculator struct {
	cfg            *config.Config
	enableStemming bool
	enableAbbrev   bool
}

// New builds a Calculator against cfg.
func New(cfg *config.Config) *Calculator {
	return &Calculator{cfg: cfg, enableStemming: true, enableAbbrev: true}
}

// Title scores the word-overlap similarity of two titles under language.
//
// Unlike original_source, both-titles-empty returns 0, not 100: the spec
// refuses to claim a match on no evidence at all.
func (c *Calculator) Title(marcTitle, copyrightTitle string, language pub.Language) float64 {
	if marcTitle == "" && copyrightTitle == "" {
		return 0.0
	}
	if marcTitle == "" || copyrightTitle == "" {
		return 0.0
	}

	marcExpanded, copyrightExpanded := marcTitle, copyrightTitle
	if c.enableAbbrev {
		marcExpanded = textnorm.ExpandAbbreviations(marcTitle, c.cfg.Wordlists.Abbreviations)
		copyrightExpanded = textnorm.ExpandAbbreviations(copyrightTitle, c.cfg.Wordlists.Abbreviations)
	}

	marcWordCount := len(strings.Fields(marcExpanded))
	copyrightWordCount := len(strings.Fields(copyrightExpanded))
	shorterWordCount := marcWordCount
	if copyrightWordCount < shorterWordCount {
		shorterWordCount = copyrightWordCount
	}

	var marcWords, copyrightWords []string
	if shorterWordCount <= 6 {
		marcWords = filterShortWords(strings.Fields(strings.ToLower(marcExpanded)))
		copyrightWords = filterShortWords(strings.Fields(strings.ToLower(copyrightExpanded)))
	} else {
		marcWords = textnorm.RemoveStopwords(marcExpanded, c.cfg.StopwordsFor(string(language)))
		copyrightWords = textnorm.RemoveStopwords(copyrightExpanded, c.cfg.StopwordsFor(string(language)))
	}

	var marcStems, copyrightStems map[string]struct{}
	if c.enableStemming {
		marcStems = toSet(textnorm.StemWords(marcWords, language))
		copyrightStems = toSet(textnorm.StemWords(copyrightWords, language))
	} else {
		marcStems = toSet(marcWords)
		copyrightStems = toSet(copyrightWords)
	}

	if len(marcStems) == 0 && len(copyrightStems) == 0 {
		return 0.0
	}
	if len(marcStems) == 0 || len(copyrightStems) == 0 {
		return 0.0
	}

	intersection, union := setOps(marcStems, copyrightStems)
	jaccardScore := (float64(len(intersection)) / float64(len(union))) * 100.0

	if len(marcStems) != len(copyrightStems) {
		shorterSet, longerSet := copyrightStems, marcStems
		if len(marcStems) < len(copyrightStems) {
			shorterSet, longerSet = marcStems, copyrightStems
		}

		if len(shorterSet) >= 2 && isSubset(shorterSet, longerSet) {
			containmentBonus := 60.0
			if len(shorterSet) >= 3 {
				containmentBonus = 75.0
			}
			if containmentBonus > jaccardScore {
				return containmentBonus
			}
			return jaccardScore
		}
	}

	return jaccardScore
}

// Author scores two author strings after stopword/abbreviation preprocessing
// using an edit-ratio, grounded on original_source's fuzz.ratio call and
// adapted to go-edlib's StringsSimilarity(Levenshtein) primitive (enriched
// from standardbeagle-lci's fuzzy_matcher.go).
func (c *Calculator) Author(marcAuthor, copyrightAuthor string) float64 {
	if marcAuthor == "" || copyrightAuthor == "" {
		return 0.0
	}
	marcProcessed := c.preprocessAuthor(marcAuthor)
	copyrightProcessed := c.preprocessAuthor(copyrightAuthor)
	return ratio(marcProcessed, copyrightProcessed)
}

// Publisher scores a MARC publisher against either a renewal's full text
// (partial-ratio) or a registration's publisher string (full ratio).
func (c *Calculator) Publisher(marcPublisher, copyrightPublisher, copyrightFullText string) float64 {
	if marcPublisher == "" {
		return 0.0
	}
	marcProcessed := c.preprocessPublisher(marcPublisher)

	if copyrightFullText != "" {
		return partialRatio(marcProcessed, copyrightFullText)
	}
	if copyrightPublisher != "" {
		copyrightProcessed := c.preprocessPublisher(copyrightPublisher)
		return ratio(marcProcessed, copyrightProcessed)
	}
	return 0.0
}

func (c *Calculator) preprocessAuthor(author string) string {
	if author == "" {
		return ""
	}
	expanded := author
	if c.enableAbbrev {
		expanded = textnorm.ExpandAbbreviations(author, c.cfg.Wordlists.Abbreviations)
	}
	stopwords := c.cfg.AuthorStopwordSet()
	words := make([]string, 0)
	for _, w := range strings.Fields(strings.ToLower(expanded)) {
		if _, stop := stopwords[w]; !stop {
			words = append(words, w)
		}
	}
	return strings.Join(words, " ")
}

func (c *Calculator) preprocessPublisher(publisher string) string {
	if publisher == "" {
		return ""
	}
	expanded := publisher
	if c.enableAbbrev {
		expanded = textnorm.ExpandAbbreviations(publisher, c.cfg.Wordlists.Abbreviations)
	}
	stopwords := c.cfg.PublisherStopwordSet()
	words := make([]string, 0)
	for _, w := range strings.Fields(strings.ToLower(expanded)) {
		if _, stop := stopwords[w]; !stop {
			words = append(words, w)
		}
	}
	return strings.Join(words, " ")
}

func filterShortWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) >= 2 {
			out = append(out, w)
		}
	}
	return out
}

func toSet(words []string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func setOps(a, b map[string]struct{}) (intersection, union map[string]struct{}) {
	intersection = make(map[string]struct{})
	union = make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		union[k] = struct{}{}
		if _, ok := b[k]; ok {
			intersection[k] = struct{}{}
		}
	}
	for k := range b {
		union[k] = struct{}{}
	}
	return intersection, union
}

func isSubset(small, big map[string]struct{}) bool {
	for k := range small {
		if _, ok := big[k]; !ok {
			return false
		}
	}
	return true
}

// ratio approximates fuzzywuzzy's fuzz.ratio as an edit-distance-derived
// similarity in [0,100], via go-edlib's normalized Levenshtein similarity.
func ratio(a, b string) float64 {
	if a == b {
		return 100.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	similarity, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0.0
	}
	return float64(similarity) * 100.0
}

// partialRatio approximates fuzzywuzzy's fuzz.partial_ratio: the shorter
// string is slid across the longer one and the best-aligned substring ratio
// wins. go-edlib has no native partial-ratio primitive, so this is built on
// top of its Levenshtein distance per window, following the same windowed
// best-alignment approach fuzzywuzzy itself uses.
func partialRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	shorter, longer := a, b
	if len(b) < len(a) {
		shorter, longer = b, a
	}
	if len(shorter) >= len(longer) {
		return ratio(shorter, longer)
	}

	best := 0.0
	windowLen := len(shorter)
	for i := 0; i+windowLen <= len(longer); i++ {
		window := longer[i : i+windowLen]
		score := ratio(shorter, window)
		if score > best {
			best = score
		}
	}
	return best
}
