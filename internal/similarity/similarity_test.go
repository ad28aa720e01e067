package similarity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/config"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

func TestTitleBothEmptyReturnsZero(t *testing.T) {
	c := New(config.Default())
	require.Equal(t, 0.0, c.Title("", "", pub.LangEng))
}

func TestTitleOneEmptyReturnsZero(t *testing.T) {
	c := New(config.Default())
	require.Equal(t, 0.0, c.Title("The Great Gatsby", "", pub.LangEng))
}

func TestTitleExactMatch(t *testing.T) {
	c := New(config.Default())
	score := c.Title("The Great American Novel", "The Great American Novel", pub.LangEng)
	require.Equal(t, 100.0, score)
}

func TestTitleContainmentBonus(t *testing.T) {
	c := New(config.Default())
	score := c.Title("History of Rome", "The Complete History of Ancient Rome and Its Empire", pub.LangEng)
	require.GreaterOrEqual(t, score, 60.0)
}

func TestAuthorEmptyReturnsZero(t *testing.T) {
	c := New(config.Default())
	require.Equal(t, 0.0, c.Author("Smith, John", ""))
}

func TestAuthorExactMatch(t *testing.T) {
	c := New(config.Default())
	require.Equal(t, 100.0, c.Author("Smith, John", "Smith, John"))
}

func TestPublisherEmptyMarcReturnsZero(t *testing.T) {
	c := New(config.Default())
	require.Equal(t, 0.0, c.Publisher("", "Scribner", ""))
}

func TestPublisherMatchesAgainstFullText(t *testing.T) {
	c := New(config.Default())
	score := c.Publisher("Scribner", "", "Copyright 1925 by Charles Scribner's Sons, New York")
	require.Greater(t, score, 0.0)
}
