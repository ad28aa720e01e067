package textnorm

import (
	"regexp"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/config"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

// Options toggles the optional steps of the fixed-order pipeline from spec
// §4.1: bracket strip, stopword removal, stemming, and a suffix regex applied
// after abbreviation expansion. Unicode repair + ASCII fold, case fold,
// punctuation strip, whitespace/hyphen coalesce, split-letter join, and
// abbreviation expansion always run.
type Options struct {
	RemoveBrackets     bool
	RemoveStopwords    bool
	Stem               bool
	RemoveSuffixRegex  *regexp.Regexp
}

// TitleOptions is the full pipeline through stemming, used for titles.
func TitleOptions() Options {
	return Options{RemoveBrackets: true, RemoveStopwords: true, Stem: true}
}

// Normalize runs the fixed-order pipeline over raw text for the given
// processing language and returns the canonical string. It never panics;
// empty input yields empty output.
func Normalize(raw string, lang pub.Language, cfg *config.Config, opts Options) string {
	if raw == "" {
		return ""
	}
	text := raw

	if opts.RemoveBrackets {
		text = RemoveBracketedContent(text)
	}

	text = NormalizeUnicode(text, cfg.Wordlists.UnicodeCorrections)
	// NormalizeUnicode lowercases nothing itself; case fold happens next.

	text = stringsToLower(text)
	text = StripPunctuation(text)
	text = CoalesceWhitespace(text)
	text = NormalizeWordSplits(text)
	text = ExpandAbbreviations(text, cfg.Wordlists.Abbreviations)

	if opts.RemoveSuffixRegex != nil {
		text = opts.RemoveSuffixRegex.ReplaceAllString(text, "")
		text = CoalesceWhitespace(text)
	}

	if !opts.RemoveStopwords && !opts.Stem {
		return text
	}

	words := []string{}
	if opts.RemoveStopwords {
		words = RemoveStopwords(text, cfg.StopwordsFor(string(lang)))
	} else {
		words = splitFields(text)
	}

	if opts.Stem {
		words = StemWords(words, lang)
	}

	return joinSpace(words)
}

// Tokens runs the fixed-order pipeline and returns the resulting token list
// (after optional stopword removal and stemming) rather than a joined
// string, for callers building index keys or token sets.
func Tokens(raw string, lang pub.Language, cfg *config.Config, opts Options) []string {
	if raw == "" {
		return nil
	}
	text := raw
	if opts.RemoveBrackets {
		text = RemoveBracketedContent(text)
	}
	text = NormalizeUnicode(text, cfg.Wordlists.UnicodeCorrections)
	text = stringsToLower(text)
	text = StripPunctuation(text)
	text = CoalesceWhitespace(text)
	text = NormalizeWordSplits(text)
	text = ExpandAbbreviations(text, cfg.Wordlists.Abbreviations)

	var words []string
	if opts.RemoveStopwords {
		words = RemoveStopwords(text, cfg.StopwordsFor(string(lang)))
	} else {
		words = splitFields(text)
	}
	if opts.Stem {
		words = StemWords(words, lang)
	}
	return words
}
