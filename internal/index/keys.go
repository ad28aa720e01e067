package index

import (
	"regexp"
	"strings"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/config"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/textnorm"
)

var (
	parenRe         = regexp.MustCompile(`\([^)]*\)`)
	bracketedLocRe  = regexp.MustCompile(`[(\[].*?[)\]]`)
	fourDigitYearRe = regexp.MustCompile(`\b\d{4}\b`)
	authorPunctRe   = regexp.MustCompile(`[^\w\s,.\-]`)
	publisherPunctRe = regexp.MustCompile(`[^\w\s&.\-]`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// titleKeys generates indexing keys for a title: every stem of length >= 2,
// plus the concatenation of the first two, last two, and first three stems.
// Grounded on original_source indexer.py's generate_wordbased_title_keys.
func titleKeys(cfg *config.Config, title string, language pub.Language) map[string]struct{} {
	keys := make(map[string]struct{})
	if title == "" {
		return keys
	}

	expanded := textnorm.ExpandAbbreviations(title, cfg.Wordlists.Abbreviations)
	significant := textnorm.RemoveStopwords(expanded, cfg.StopwordsFor(string(language)))
	if len(significant) == 0 {
		return keys
	}

	stems := textnorm.StemWords(significant, language)
	for _, w := range stems {
		if len(w) >= 2 {
			keys[w] = struct{}{}
		}
	}

	if len(stems) >= 2 {
		keys[strings.Join(stems[:2], "_")] = struct{}{}
		if len(stems) > 2 {
			keys[strings.Join(stems[len(stems)-2:], "_")] = struct{}{}
		}
		if len(stems) >= 3 {
			keys[strings.Join(stems[:3], "_")] = struct{}{}
		}
	}

	return keys
}

// authorKeys generates indexing keys for an author name: a format detector
// distinguishes "Last, First Middle" from "First Middle Last" and emits
// surname/given-name tokens plus both orderings of a surname<->given bigram.
// Grounded on original_source indexer.py's generate_wordbased_author_keys.
func authorKeys(cfg *config.Config, author string, language pub.Language) map[string]struct{} {
	keys := make(map[string]struct{})
	if author == "" {
		return keys
	}

	expanded := textnorm.ExpandAbbreviations(author, cfg.Wordlists.Abbreviations)
	stopwords := cfg.AuthorStopwordSet()

	titlePattern := authorTitlePattern(cfg.Wordlists.AuthorTitles)

	cleaned := strings.ToLower(expanded)
	cleaned = parenRe.ReplaceAllString(cleaned, "")
	cleaned = titlePattern.ReplaceAllString(cleaned, "")
	cleaned = authorPunctRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(whitespaceRunRe.ReplaceAllString(cleaned, " "))

	if strings.Contains(cleaned, ",") {
		parts := strings.SplitN(cleaned, ",", 2)
		if len(parts) < 2 {
			return keys
		}
		surnameWords := filterWords(strings.Fields(parts[0]), stopwords, 2)
		givenWords := filterWords(strings.Fields(parts[1]), stopwords, 1)

		for _, w := range surnameWords {
			keys[w] = struct{}{}
		}
		for _, w := range givenWords {
			keys[w] = struct{}{}
			if len(w) == 1 && isAlphaWord(w) {
				keys[w+"."] = struct{}{}
			}
		}

		if len(surnameWords) > 0 && len(givenWords) > 0 {
			keys[surnameWords[0]+"_"+givenWords[0]] = struct{}{}
			keys[givenWords[0]+"_"+surnameWords[0]] = struct{}{}
			if len(surnameWords) > 1 {
				last := surnameWords[len(surnameWords)-1]
				keys[last+"_"+givenWords[0]] = struct{}{}
				keys[givenWords[0]+"_"+last] = struct{}{}
			}
			if len(givenWords) > 1 {
				last := givenWords[len(givenWords)-1]
				keys[surnameWords[0]+"_"+last] = struct{}{}
				keys[last+"_"+surnameWords[0]] = struct{}{}
			}
		}
		return keys
	}

	words := filterWords(strings.Fields(cleaned), stopwords, 2)
	if len(words) == 0 {
		return keys
	}

	var givenWords, surnameWords []string
	if len(words) >= 2 {
		givenWords = words[:len(words)-1]
		surnameWords = []string{words[len(words)-1]}
		if len(words) >= 3 && allLongerThan(words[len(words)-2:], 2) {
			givenWords = words[:len(words)-2]
			surnameWords = words[len(words)-2:]
		}
	} else {
		surnameWords = words
	}

	for _, w := range words {
		keys[w] = struct{}{}
		if len(w) == 1 && isAlphaWord(w) {
			keys[w+"."] = struct{}{}
		}
	}

	if len(givenWords) > 0 && len(surnameWords) > 0 {
		keys[givenWords[0]+"_"+surnameWords[0]] = struct{}{}
		keys[surnameWords[0]+"_"+givenWords[0]] = struct{}{}
		if len(surnameWords) > 1 {
			last := surnameWords[len(surnameWords)-1]
			keys[givenWords[0]+"_"+last] = struct{}{}
			keys[last+"_"+givenWords[0]] = struct{}{}
		}
	}

	return keys
}

// publisherKeys generates indexing keys for a publisher name: tokens and
// bigrams after stripping parenthetical locations and bare 4-digit years,
// falling back to the three longest tokens if stopword filtering removed
// everything. Grounded on generate_wordbased_publisher_keys.
func publisherKeys(cfg *config.Config, publisher string, language pub.Language) map[string]struct{} {
	keys := make(map[string]struct{})
	if publisher == "" {
		return keys
	}

	expanded := textnorm.ExpandAbbreviations(publisher, cfg.Wordlists.Abbreviations)
	stopwords := cfg.PublisherStopwordSet()

	cleaned := strings.ToLower(expanded)
	cleaned = bracketedLocRe.ReplaceAllString(cleaned, "")
	cleaned = fourDigitYearRe.ReplaceAllString(cleaned, "")
	cleaned = publisherPunctRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(whitespaceRunRe.ReplaceAllString(cleaned, " "))

	var words []string
	for _, w := range strings.Fields(cleaned) {
		w = strings.Trim(w, ".,&-")
		if w == "" {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if len(w) >= 3 || (len(w) == 2 && isAlphaWord(w)) {
			words = append(words, w)
		}
	}

	if len(words) == 0 {
		var all []string
		for _, w := range strings.Fields(cleaned) {
			w = strings.Trim(w, ".,&-")
			if len(w) >= 2 {
				all = append(all, w)
			}
		}
		sortByLengthDesc(all)
		if len(all) > 3 {
			all = all[:3]
		}
		words = all
	}

	if len(words) == 0 {
		return keys
	}

	for _, w := range words {
		keys[w] = struct{}{}
	}

	if len(words) >= 2 {
		keys[strings.Join(words[:2], "_")] = struct{}{}
		if len(words) > 2 {
			keys[strings.Join(words[len(words)-2:], "_")] = struct{}{}
		}
		if len(words) >= 3 {
			keys[strings.Join(words[:3], "_")] = struct{}{}
			if len(words) >= 4 {
				mid := len(words)/2 - 1
				keys[strings.Join(words[mid:mid+2], "_")] = struct{}{}
			}
		}
	}

	return keys
}

func authorTitlePattern(titles []string) *regexp.Regexp {
	if len(titles) == 0 {
		return regexp.MustCompile(`\b(dr|prof|sir|lord|lady|mrs?|ms)\b\.?`)
	}
	return regexp.MustCompile(`\b(` + strings.Join(titles, "|") + `)\b\.?`)
}

func filterWords(words []string, stopwords map[string]struct{}, minLen int) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".,")
		if w == "" {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if len(w) >= minLen {
			out = append(out, w)
		}
	}
	return out
}

func allLongerThan(words []string, n int) bool {
	for _, w := range words {
		if len(w) <= n {
			return false
		}
	}
	return true
}

func isAlphaWord(s string) bool {
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return len(s) > 0
}

func sortByLengthDesc(words []string) {
	for i := 1; i < len(words); i++ {
		for j := i; j > 0 && len(words[j]) > len(words[j-1]); j-- {
			words[j], words[j-1] = words[j-1], words[j]
		}
	}
}
