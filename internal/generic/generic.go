// Package generic implements the Generic-Title Detector (spec §4.4): titles
// so common ("Poems", "Annual Report") that similarity alone is not
// evidentiary.
package generic

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// Model is the frequency-counter half of the Generic-Title Detector. It is
// built once while indexing reference corpora (spec §3 GenericTitleModel)
// and is read-mostly afterward: is_generic calls under concurrent workers
// only read title_counts (under mu), so it is shared without copying once
// indexing is done.
type Model struct {
	mu           sync.Mutex
	titleCounts  map[string]int
	maxTitles    int
	trimmed      bool
}

// NewModel constructs an empty frequency counter bounded at maxTitles
// entries.
func NewModel(maxTitles int) *Model {
	if maxTitles <= 0 {
		maxTitles = 50000
	}
	return &Model{titleCounts: make(map[string]int), maxTitles: maxTitles}
}

// AddTitle records one occurrence of a reference title's normalized form.
// Grounded on original_source text_processing.py's GenericTitleDetector.add_title.
func (m *Model) AddTitle(title string) {
	if title == "" {
		return
	}
	normalized := normalizeTitle(title)
	if normalized == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.titleCounts[normalized]++
	if len(m.titleCounts) > m.maxTitles {
		m.trim()
	}
}

// trim keeps only the top half most-common entries, matching the source's
// Counter.most_common(max // 2) trimming behavior. Caller must hold mu.
func (m *Model) trim() {
	type kv struct {
		k string
		v int
	}
	all := make([]kv, 0, len(m.titleCounts))
	for k, v := range m.titleCounts {
		all = append(all, kv{k, v})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].v > all[j].v })
	keep := m.maxTitles / 2
	if keep > len(all) {
		keep = len(all)
	}
	next := make(map[string]int, keep)
	for _, e := range all[:keep] {
		next[e.k] = e.v
	}
	m.titleCounts = next
	m.trimmed = true
}

func (m *Model) count(normalized string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.titleCounts[normalized]
}

// Stats mirrors original_source's get_stats for run-summary reporting.
type Stats struct {
	TotalUniqueTitles int
	GenericByFrequency int
	Trimmed            bool
}

func (m *Model) Stats(frequencyThreshold int) Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Stats{TotalUniqueTitles: len(m.titleCounts), Trimmed: m.trimmed}
	for title, count := range m.titleCounts {
		if len(title) < 20 && count >= frequencyThreshold {
			s.GenericByFrequency++
		}
	}
	return s
}

func normalizeTitle(title string) string {
	normalized := strings.ToLower(title)
	words := nonWordRe.Split(normalized, -1)
	normalized = strings.Join(words, " ")
	return strings.TrimSpace(strings.Join(strings.Fields(normalized), " "))
}

// Detector combines a fixed pattern list with a Model's frequency signal,
// and memoizes detection results with a bounded LRU. Grounded on
// original_source text_processing.py's GenericTitleDetector.
type Detector struct {
	mu                 sync.Mutex
	patterns           []string
	frequencyThreshold int
	model              *Model
	cache              *lru
}

// New builds a Detector. patterns should be lowercase; cacheSize bounds the
// memoization LRU (spec §4.4: "a bounded LRU of configurable size").
func New(patterns []string, frequencyThreshold, cacheSize int, model *Model) *Detector {
	lower := make([]string, len(patterns))
	for i, p := range patterns {
		lower[i] = strings.ToLower(p)
	}
	return &Detector{
		patterns:           lower,
		frequencyThreshold: frequencyThreshold,
		model:              model,
		cache:              newLRU(cacheSize),
	}
}

// IsGeneric reports whether title is generic under the given language,
// memoized by (title, language).
func (d *Detector) IsGeneric(title string, language pub.Language) bool {
	if title == "" {
		return false
	}
	key := string(language)

	d.mu.Lock()
	if cached, ok := d.cache.get(title, key); ok {
		d.mu.Unlock()
		return cached
	}
	d.mu.Unlock()

	result := d.isGenericImpl(title)

	d.mu.Lock()
	d.cache.put(title, key, result)
	d.mu.Unlock()

	return result
}

func (d *Detector) isGenericImpl(title string) bool {
	normalized := normalizeTitle(title)
	if normalized == "" {
		return false
	}
	for _, p := range d.patterns {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	if len(normalized) < 20 && d.model.count(normalized) >= d.frequencyThreshold {
		return true
	}
	return false
}

// Reason explains why a title was flagged generic, or "none". Pattern
// matches prefer the longest pattern, per spec §4.4.
func (d *Detector) Reason(title string, language pub.Language) string {
	if title == "" {
		return "none"
	}
	normalized := normalizeTitle(title)
	if normalized == "" {
		return "none"
	}

	sorted := append([]string(nil), d.patterns...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	for _, p := range sorted {
		if strings.Contains(normalized, p) {
			return "pattern: " + p
		}
	}

	count := d.model.count(normalized)
	if len(normalized) < 20 && count >= d.frequencyThreshold {
		return "frequency"
	}
	return "none"
}
