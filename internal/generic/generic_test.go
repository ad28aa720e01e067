package generic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

func TestModelAddTitleAndCount(t *testing.T) {
	m := NewModel(100)
	m.AddTitle("Annual Report")
	m.AddTitle("annual   report")
	m.AddTitle("Annual Report!")
	require.Equal(t, 3, m.count(normalizeTitle("Annual Report")))
}

func TestModelAddTitleIgnoresEmpty(t *testing.T) {
	m := NewModel(10)
	m.AddTitle("")
	m.AddTitle("   ")
	require.Equal(t, 0, len(m.titleCounts))
}

func TestModelTrimsWhenOverCapacity(t *testing.T) {
	m := NewModel(4)
	m.AddTitle("one")
	m.AddTitle("two")
	m.AddTitle("two")
	m.AddTitle("three")
	m.AddTitle("three")
	m.AddTitle("three")
	m.AddTitle("four")
	m.AddTitle("five")

	require.True(t, m.trimmed)
	require.LessOrEqual(t, len(m.titleCounts), 4)
	// the most frequent entry must survive the trim
	require.Equal(t, 3, m.count(normalizeTitle("three")))
}

func TestModelStats(t *testing.T) {
	m := NewModel(100)
	for i := 0; i < 5; i++ {
		m.AddTitle("Poems")
	}
	m.AddTitle("A Very Long And Specific Unique Title That Should Not Count")

	stats := m.Stats(3)
	require.Equal(t, 2, stats.TotalUniqueTitles)
	require.Equal(t, 1, stats.GenericByFrequency)
	require.False(t, stats.Trimmed)
}

func TestDetectorIsGenericByPattern(t *testing.T) {
	model := NewModel(100)
	d := New([]string{"annual report", "proceedings"}, 10, 100, model)

	require.True(t, d.IsGeneric("Annual Report 1950", pub.LangEng))
	require.False(t, d.IsGeneric("The Great Gatsby", pub.LangEng))
	require.False(t, d.IsGeneric("", pub.LangEng))
}

func TestDetectorIsGenericByFrequency(t *testing.T) {
	model := NewModel(100)
	for i := 0; i < 5; i++ {
		model.AddTitle("Poems")
	}
	d := New(nil, 5, 100, model)

	require.True(t, d.IsGeneric("Poems", pub.LangEng))
	// frequency detection is language-independent; the cache key differs but
	// the underlying result is the same.
	require.True(t, d.IsGeneric("Poems", pub.LangFre))
}

func TestDetectorMemoizesResult(t *testing.T) {
	model := NewModel(100)
	d := New([]string{"report"}, 10, 100, model)

	first := d.IsGeneric("Annual Report", pub.LangEng)
	require.True(t, first)
	// second call should hit the cache and return the same result
	second := d.IsGeneric("Annual Report", pub.LangEng)
	require.Equal(t, first, second)
}

func TestDetectorReasonPrefersLongestPattern(t *testing.T) {
	model := NewModel(100)
	d := New([]string{"report", "annual report"}, 100, 100, model)
	require.Equal(t, "pattern: annual report", d.Reason("Annual Report", pub.LangEng))
}

func TestDetectorReasonFrequency(t *testing.T) {
	model := NewModel(100)
	for i := 0; i < 4; i++ {
		model.AddTitle("Bulletin")
	}
	d := New(nil, 4, 100, model)
	require.Equal(t, "frequency", d.Reason("Bulletin", pub.LangEng))
}

func TestDetectorReasonNone(t *testing.T) {
	model := NewModel(100)
	d := New(nil, 100, 100, model)
	require.Equal(t, "none", d.Reason("Something Unique And Long Enough", pub.LangEng))
	require.Equal(t, "none", d.Reason("", pub.LangEng))
}
