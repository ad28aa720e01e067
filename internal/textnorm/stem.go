package textnorm

import (
	"strings"

	"github.com/surgebase/porter2"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

// StemWords stems a list of words for the given processing language. English
// uses the teacher's porter2 dependency directly; the other four processing
// languages use a light suffix-stripping stemmer (stemLight) since no
// Snowball-style multi-language stemmer appears anywhere in the retrieved
// example pack (see SPEC_FULL.md "Non-English stemming").
func StemWords(words []string, language pub.Language) []string {
	if len(words) == 0 {
		return nil
	}
	out := make([]string, len(words))
	switch language {
	case pub.LangEng, "":
		for i, w := range words {
			out[i] = porter2.Stem(w)
		}
	default:
		for i, w := range words {
			out[i] = stemLight(w, language)
		}
	}
	return out
}

// suffixes lists, per non-English processing language, the inflectional
// suffixes stripped by stemLight, longest first so "-ungen" is tried before
// "-en". These are drawn from the word shapes already present in
// original_source's derived_work_detector.py pattern lists (e.g. German
// "erganzung", "bibliographie"; French/Italian/Spanish plural markers).
var suffixes = map[pub.Language][]string{
	pub.LangFre: {"ements", "ement", "euses", "euse", "ages", "ique", "iste", "ants", "ees", "es", "e", "s"},
	pub.LangGer: {"ungen", "ung", "heiten", "heit", "keiten", "keit", "lich", "isch", "en", "er", "e", "s"},
	pub.LangSpa: {"aciones", "acion", "amente", "mente", "ando", "iendo", "ables", "able", "as", "os", "a", "o", "s"},
	pub.LangIta: {"azioni", "azione", "amente", "mente", "ando", "endo", "abile", "ibile", "he", "hi", "i", "a", "o", "e"},
}

// stemLight strips the longest matching suffix from word, provided the
// remaining stem is at least 3 characters (to avoid reducing short words to
// nothing). If nothing matches, word is returned unchanged.
func stemLight(word string, language pub.Language) string {
	tbl, ok := suffixes[language]
	if !ok {
		return word
	}
	for _, suf := range tbl {
		if strings.HasSuffix(word, suf) && len(word)-len(suf) >= 3 {
			return word[:len(word)-len(suf)]
		}
	}
	return word
}
