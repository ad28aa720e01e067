package textnorm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

func TestStemWordsEnglishUsesPorter2(t *testing.T) {
	out := StemWords([]string{"running", "flies"}, pub.LangEng)
	require.Equal(t, []string{"run", "fli"}, out)
}

func TestStemWordsEmpty(t *testing.T) {
	require.Nil(t, StemWords(nil, pub.LangEng))
}

func TestStemLightGermanStripsLongestSuffix(t *testing.T) {
	require.Equal(t, "erganz", stemLight("erganzungen", pub.LangGer))
}

func TestStemLightKeepsWordWhenStemTooShort(t *testing.T) {
	// stripping "en" from "sen" would leave a 1-char stem, below the 3-char floor
	require.Equal(t, "sen", stemLight("sen", pub.LangGer))
}

func TestStemLightUnknownLanguageReturnsWordUnchanged(t *testing.T) {
	require.Equal(t, "word", stemLight("word", pub.Language("xxx")))
}
