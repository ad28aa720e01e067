package textnorm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/config"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

func TestNormalizeStripsStopwordsWithoutStemming(t *testing.T) {
	cfg := config.Default()
	opts := Options{RemoveBrackets: true, RemoveStopwords: true}
	got := Normalize("The Annual Report of the Society", pub.LangEng, cfg, opts)
	require.Equal(t, "annual report society", got)
}

func TestNormalizeWithTitleOptionsStemsWords(t *testing.T) {
	cfg := config.Default()
	got := Normalize("The Running Dogs", pub.LangEng, cfg, TitleOptions())
	require.Contains(t, got, "run")
	require.Contains(t, got, "dog")
	require.NotContains(t, got, "the")
}

func TestNormalizeEmptyInput(t *testing.T) {
	cfg := config.Default()
	require.Equal(t, "", Normalize("", pub.LangEng, cfg, TitleOptions()))
}

func TestNormalizeRemovesBracketedAnnotations(t *testing.T) {
	cfg := config.Default()
	opts := Options{RemoveBrackets: true}
	got := Normalize("The Great Gatsby [microform]", pub.LangEng, cfg, opts)
	require.Equal(t, "the great gatsby", got)
}

func TestTokensReturnsFilteredWordList(t *testing.T) {
	cfg := config.Default()
	opts := Options{RemoveBrackets: true, RemoveStopwords: true}
	got := Tokens("The Annual Report of the Society", pub.LangEng, cfg, opts)
	require.Equal(t, []string{"annual", "report", "society"}, got)
}

func TestTokensEmptyInput(t *testing.T) {
	cfg := config.Default()
	require.Nil(t, Tokens("", pub.LangEng, cfg, TitleOptions()))
}
