package lang

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

func TestResolveLanguage(t *testing.T) {
	l, status := ResolveLanguage("fre")
	require.Equal(t, pub.LangFre, l)
	require.Equal(t, pub.LangDetected, status)

	l, status = ResolveLanguage("")
	require.Equal(t, pub.LangEng, l)
	require.Equal(t, pub.LangFallbackEnglish, status)

	l, status = ResolveLanguage("xyz")
	require.Equal(t, pub.LangEng, l)
	require.Equal(t, pub.LangUnknownCode, status)
}

func TestResolveCountry(t *testing.T) {
	// positions 15-17 (0-indexed) of an 18+ char field.
	field := "000000000000000nyu"
	code, class := ResolveCountry(field)
	require.Equal(t, "nyu", code)
	require.Equal(t, pub.CountryUS, class)

	field2 := "000000000000000fr "
	code2, class2 := ResolveCountry(field2)
	require.Equal(t, "fr", code2)
	require.Equal(t, pub.CountryNonUS, class2)

	short := "short"
	_, class3 := ResolveCountry(short)
	require.Equal(t, pub.CountryUnknown, class3)
}
