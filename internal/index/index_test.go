package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/config"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

func TestAddAndCandidatesByTitleAndYear(t *testing.T) {
	cfg := config.Default()
	idx := New(cfg)

	id := idx.Add(&pub.Publication{
		ID: "r1", Title: "History of the Peloponnesian War", Year: 1925, LanguageCode: pub.LangEng,
	})
	require.Equal(t, 0, id)
	require.Equal(t, 1, idx.Size())

	query := &pub.Publication{Title: "History of the Peloponnesian War", Year: 1925, LanguageCode: pub.LangEng}
	candidates := idx.Candidates(query, 1)
	require.Contains(t, candidates, 0)
}

func TestCandidatesLCCNShortCircuit(t *testing.T) {
	cfg := config.Default()
	idx := New(cfg)
	idx.Add(&pub.Publication{ID: "r1", Title: "Unrelated Title", NormalizedLCCN: "n78890351", LanguageCode: pub.LangEng})
	idx.Add(&pub.Publication{ID: "r2", Title: "Another Unrelated Title", LanguageCode: pub.LangEng})

	query := &pub.Publication{Title: "Completely Different Words", NormalizedLCCN: "n78890351", LanguageCode: pub.LangEng}
	candidates := idx.Candidates(query, 1)
	require.Len(t, candidates, 1)
	require.Contains(t, candidates, 0)
}

func TestCandidatesNoMatchReturnsEmpty(t *testing.T) {
	cfg := config.Default()
	idx := New(cfg)
	idx.Add(&pub.Publication{ID: "r1", Title: "Some Title About Gardening", LanguageCode: pub.LangEng})

	query := &pub.Publication{Title: "Totally Unrelated Subject Matter Here", LanguageCode: pub.LangEng}
	candidates := idx.Candidates(query, 1)
	require.Empty(t, candidates)
}

func TestAuthorKeysCommaFormat(t *testing.T) {
	cfg := config.Default()
	keys := authorKeys(cfg, "Smith, John Q.", pub.LangEng)
	require.Contains(t, keys, "smith")
	require.Contains(t, keys, "john")
}

func TestPublisherKeysFallbackOnAllStopwords(t *testing.T) {
	cfg := config.Default()
	keys := publisherKeys(cfg, "The Press", pub.LangEng)
	require.NotEmpty(t, keys)
}
