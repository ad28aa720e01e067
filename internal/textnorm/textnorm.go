// Package textnorm implements the Text Normalizer (spec §4.1): pure,
// idempotent functions that turn raw title/author/publisher strings into
// canonical, comparable forms. Every function here never panics and treats
// empty or malformed input as empty output, per the Failure semantics
// paragraph of §4.1.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	bracketRe     = regexp.MustCompile(`\[[^\[\]]*\]`)
	splitLetterRe = regexp.MustCompile(`\b(?:[a-z]\s+)+[a-z]\b`)
	punctuationRe = regexp.MustCompile(`[^\w\s\-]`)
	whitespaceRe  = regexp.MustCompile(`[\s\-]+`)
)

// RemoveBracketedContent strips `[...]` groups such as catalogers'
// annotations ("microform", "electronic resource"), handling nesting by
// repeatedly removing innermost groups until no change occurs, then
// collapsing the whitespace left behind. Grounded on
// original_source text_utils.py's remove_bracketed_content.
func RemoveBracketedContent(text string) string {
	if text == "" {
		return ""
	}
	cleaned := text
	for strings.Contains(cleaned, "[") && strings.Contains(cleaned, "]") {
		next := bracketRe.ReplaceAllString(cleaned, "")
		if next == cleaned {
			break
		}
		cleaned = next
	}
	return strings.TrimSpace(whitespaceCollapse(cleaned))
}

func whitespaceCollapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// AsciiFold transliterates non-ASCII runes to their closest ASCII
// equivalent using Unicode decomposition (NFD) followed by stripping
// combining marks, then drops any rune that still isn't ASCII. This mirrors
// the teacher's reliance on golang.org/x/text for Unicode handling, used
// here in place of the source's unidecode dependency (there is no pack
// library offering full transliteration tables; NFD+strip-marks covers the
// overwhelming majority of Latin-script accented characters the reference
// corpora contain).
func AsciiFold(text string) string {
	if text == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMark), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		out = text
	}
	var b strings.Builder
	b.Grow(len(out))
	for _, r := range out {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// NormalizeUnicode fixes known mojibake sequences, NFC-normalizes, and then
// ASCII-folds. Grounded on original_source text_utils.py's normalize_unicode.
func NormalizeUnicode(text string, corrections map[string]string) string {
	if text == "" {
		return ""
	}
	fixed := text
	for corrupt, correct := range corrections {
		fixed = strings.ReplaceAll(fixed, corrupt, correct)
	}
	fixed = norm.NFC.String(fixed)
	return AsciiFold(fixed)
}

// NormalizeWordSplits joins runs of two or more single letters separated by
// whitespace ("u s a" -> "usa"), reconstructing initialisms that lost their
// periods during punctuation stripping. Grounded on original_source
// text_utils.py's normalize_word_splits.
func NormalizeWordSplits(text string) string {
	if text == "" {
		return ""
	}
	return splitLetterRe.ReplaceAllStringFunc(text, func(m string) string {
		return strings.Join(strings.Fields(m), "")
	})
}

// StripPunctuation replaces any character that is not a word character,
// whitespace, or hyphen with a space.
func StripPunctuation(text string) string {
	return punctuationRe.ReplaceAllString(text, " ")
}

// CoalesceWhitespace collapses runs of whitespace and hyphens to a single
// space and trims the result.
func CoalesceWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
