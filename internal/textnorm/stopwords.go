package textnorm

import "strings"

// RemoveStopwords lowercases text, splits on whitespace, and drops any word
// present in stopwords or shorter than two characters. Grounded on
// original_source text_processing.py's LanguageProcessor.remove_stopwords.
func RemoveStopwords(text string, stopwords map[string]struct{}) []string {
	if text == "" {
		return nil
	}
	words := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := stopwords[w]; stop {
			continue
		}
		if len(w) < 2 {
			continue
		}
		out = append(out, w)
	}
	return out
}
