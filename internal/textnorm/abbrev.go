package textnorm

import "strings"

// ExpandAbbreviations expands words found in dict, conservatively: a word is
// expanded only if it ends with a period, or if it is itself shorter than 5
// characters (after stripping trailing punctuation). Longer dictionary keys
// that appear without a trailing period are left alone. Grounded on
// original_source text_processing.py's expand_abbreviations.
func ExpandAbbreviations(text string, dict map[string]string) string {
	if text == "" {
		return ""
	}
	words := strings.Fields(strings.ToLower(text))
	result := make([]string, 0, len(words))
	for _, word := range words {
		clean := strings.TrimRight(word, ".,;:!?")
		expansion, ok := dict[clean]
		if !ok {
			result = append(result, word)
			continue
		}
		if strings.HasSuffix(word, ".") || len(clean) < 5 {
			if word != clean {
				expansion += word[len(clean):]
			}
			result = append(result, expansion)
		} else {
			result = append(result, word)
		}
	}
	return strings.Join(result, " ")
}
