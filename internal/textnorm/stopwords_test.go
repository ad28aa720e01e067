package textnorm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemoveStopwordsDropsStopwordsAndShortWords(t *testing.T) {
	stop := map[string]struct{}{"the": {}, "of": {}}
	got := RemoveStopwords("The Tale of a City", stop)
	require.Equal(t, []string{"tale", "city"}, got)
}

func TestRemoveStopwordsEmptyInput(t *testing.T) {
	require.Nil(t, RemoveStopwords("", map[string]struct{}{}))
}
