package textnorm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemoveBracketedContent(t *testing.T) {
	require.Equal(t, "The Great Gatsby", RemoveBracketedContent("The Great Gatsby [microform]"))
	require.Equal(t, "A Study", RemoveBracketedContent("A [nested [deep]] Study"))
	require.Equal(t, "", RemoveBracketedContent(""))
	require.Equal(t, "No Brackets", RemoveBracketedContent("No Brackets"))
}

func TestAsciiFold(t *testing.T) {
	require.Equal(t, "Cafe", AsciiFold("Café"))
	require.Equal(t, "", AsciiFold(""))
	require.Equal(t, "Munchen", AsciiFold("München"))
}

func TestNormalizeUnicode(t *testing.T) {
	corrections := map[string]string{"â€™": "'"}
	require.Equal(t, "it's", NormalizeUnicode("itâ€™s", corrections))
	require.Equal(t, "", NormalizeUnicode("", corrections))
}

func TestNormalizeWordSplits(t *testing.T) {
	require.Equal(t, "usa is here", NormalizeWordSplits("u s a is here"))
	require.Equal(t, "", NormalizeWordSplits(""))
}

func TestStripPunctuation(t *testing.T) {
	require.Equal(t, "Hello  World ", StripPunctuation("Hello, World!"))
}

func TestCoalesceWhitespace(t *testing.T) {
	require.Equal(t, "a b c", CoalesceWhitespace("a   b-c"))
	require.Equal(t, "", CoalesceWhitespace("   "))
}
