package derived

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

func TestDetectFlagsEnglishIndexAndSuffix(t *testing.T) {
	d := New()

	marc, ref := d.Detect("Index to the Collected Works of Mark Twain", "Collected Works of Mark Twain", pub.LangEng)
	require.True(t, marc.IsDerived)
	require.Equal(t, "index", marc.PatternMatched)
	require.False(t, ref.IsDerived)

	marc2, _ := d.Detect("Shakespeare Bibliography", "", pub.LangEng)
	require.True(t, marc2.IsDerived)
	require.Equal(t, "bibliography_suffix", marc2.PatternMatched)
}

func TestDetectReturnsEmptyInfoForPlainTitle(t *testing.T) {
	d := New()
	info := d.checkSingle("Collected Poems", pub.LangEng)
	require.False(t, info.IsDerived)
	require.Zero(t, info.Confidence)
}

func TestDetectFallsBackToEnglishPatternsAtReducedConfidence(t *testing.T) {
	d := New()
	// "Index to" is an English pattern; run it under French, which has its own
	// differently worded index pattern, so only the English fallback matches.
	info := d.checkSingle("Index to French Literature", pub.LangFre)
	require.True(t, info.IsDerived)
	require.Equal(t, "index_eng", info.PatternMatched)
	require.Equal(t, pub.LangEng, info.LanguageHint)
	require.InDelta(t, 0.9*0.95, info.Confidence, 0.0001)
}

func TestDetectUnknownLanguageFallsBackToEnglishTable(t *testing.T) {
	d := New()
	info := d.checkSingle("Index to Unknown Language Works", pub.Language("xxx"))
	require.True(t, info.IsDerived)
	require.Equal(t, "index", info.PatternMatched)
}

func TestDetectGermanPatterns(t *testing.T) {
	d := New()
	info := d.checkSingle("Register zu den Werken Goethes", pub.LangGer)
	require.True(t, info.IsDerived)
	require.Equal(t, "register", info.PatternMatched)
}

func TestShouldPenalizeNeitherDerived(t *testing.T) {
	penalize, score := ShouldPenalize(Info{}, Info{}, 0.9)
	require.False(t, penalize)
	require.Equal(t, 0.9, score)
}

func TestShouldPenalizeBothSamePattern(t *testing.T) {
	marc := Info{IsDerived: true, PatternMatched: "index", Confidence: 0.9}
	ref := Info{IsDerived: true, PatternMatched: "index", Confidence: 0.8}
	penalize, score := ShouldPenalize(marc, ref, 1.0)
	require.True(t, penalize)
	require.InDelta(t, 1.0*(1.0-0.85*0.1), score, 0.0001)
}

func TestShouldPenalizeBothDifferentPattern(t *testing.T) {
	marc := Info{IsDerived: true, PatternMatched: "index", Confidence: 0.9}
	ref := Info{IsDerived: true, PatternMatched: "bibliography", Confidence: 0.8}
	penalize, score := ShouldPenalize(marc, ref, 1.0)
	require.True(t, penalize)
	require.InDelta(t, 1.0*(1.0-0.85*0.3), score, 0.0001)
}

func TestShouldPenalizeOneSideOnly(t *testing.T) {
	marc := Info{IsDerived: true, PatternMatched: "index", Confidence: 0.9}
	penalize, score := ShouldPenalize(marc, Info{}, 1.0)
	require.True(t, penalize)
	require.InDelta(t, 1.0*(1.0-0.9*0.5), score, 0.0001)

	penalize2, score2 := ShouldPenalize(Info{}, marc, 1.0)
	require.True(t, penalize2)
	require.InDelta(t, 1.0*(1.0-0.9*0.5), score2, 0.0001)
}

func TestPenaltyReason(t *testing.T) {
	require.Equal(t, "no derived work detected", PenaltyReason(Info{}, Info{}))

	same := Info{IsDerived: true, PatternMatched: "index"}
	require.Equal(t, "both are index works", PenaltyReason(same, same))

	marc := Info{IsDerived: true, PatternMatched: "index"}
	ref := Info{IsDerived: true, PatternMatched: "bibliography"}
	require.Equal(t, "marc is index, reference is bibliography", PenaltyReason(marc, ref))

	require.Equal(t, "marc appears to be index", PenaltyReason(marc, Info{}))
	require.Equal(t, "reference appears to be bibliography", PenaltyReason(Info{}, ref))
}
