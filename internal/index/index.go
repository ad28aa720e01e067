// Package index implements the Indexer (spec §4.6): inverted indices over a
// reference corpus, keyed by stemmed title tokens, processed author tokens,
// processed publisher tokens, year, and normalized LCCN.
package index

import (
	"github.com/pulibrary/marc-pd-tool-sub003/internal/config"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

// Index holds the five parallel mappings described in spec §3, built once
// from a reference corpus and read-only thereafter so it can be shared
// across workers without copying. Grounded on original_source indexer.py's
// DataIndexer.
type Index struct {
	cfg *config.Config

	publications []*pub.Publication

	titleIndex     map[string]*entry
	authorIndex    map[string]*entry
	publisherIndex map[string]*entry
	yearIndex      map[int]*entry
	lccnIndex      map[string]*entry
}

// New builds an empty Index against cfg.
func New(cfg *config.Config) *Index {
	return &Index{
		cfg:            cfg,
		titleIndex:     make(map[string]*entry),
		authorIndex:    make(map[string]*entry),
		publisherIndex: make(map[string]*entry),
		yearIndex:      make(map[int]*entry),
		lccnIndex:      make(map[string]*entry),
	}
}

// Add indexes p and returns its dense integer ID.
func (idx *Index) Add(p *pub.Publication) int {
	id := len(idx.publications)
	idx.publications = append(idx.publications, p)

	for key := range titleKeys(idx.cfg, p.FullTitle(), p.LanguageCode) {
		addTo(idx.titleIndex, key, id)
	}

	if p.Author != "" {
		for key := range authorKeys(idx.cfg, p.Author, p.LanguageCode) {
			addTo(idx.authorIndex, key, id)
		}
	}
	if p.MainAuthor != "" {
		for key := range authorKeys(idx.cfg, p.MainAuthor, p.LanguageCode) {
			addTo(idx.authorIndex, key, id)
		}
	}

	if p.Publisher != "" {
		for key := range publisherKeys(idx.cfg, p.Publisher, p.LanguageCode) {
			addTo(idx.publisherIndex, key, id)
		}
	}

	if p.Year != 0 {
		addToInt(idx.yearIndex, p.Year, id)
	}

	if p.NormalizedLCCN != "" {
		addTo(idx.lccnIndex, p.NormalizedLCCN, id)
	}

	return id
}

// Size returns the number of indexed publications.
func (idx *Index) Size() int {
	return len(idx.publications)
}

// Get returns the indexed publication at id.
func (idx *Index) Get(id int) *pub.Publication {
	return idx.publications[id]
}

// Candidates finds the candidate ID set for query under yearTolerance,
// following the exact intersection order fixed by spec §4.6: LCCN
// short-circuit, then year as the primary filter, then title, author,
// publisher in that order. The title intersection is kept even when it
// leaves no candidates; the author and publisher intersections are kept only
// when they leave at least one, otherwise the set before that step stands.
// Grounded on find_candidates.
func (idx *Index) Candidates(query *pub.Publication, yearTolerance int) map[int]struct{} {
	if query.NormalizedLCCN != "" {
		if e, ok := idx.lccnIndex[query.NormalizedLCCN]; ok && !e.isEmpty() {
			return e.ids()
		}
	}

	titleCandidates := unionKeys(idx.titleIndex, titleKeys(idx.cfg, query.FullTitle(), query.LanguageCode))

	authorCandidates := make(map[int]struct{})
	if query.Author != "" {
		mergeInto(authorCandidates, unionKeys(idx.authorIndex, authorKeys(idx.cfg, query.Author, query.LanguageCode)))
	}
	if query.MainAuthor != "" {
		mergeInto(authorCandidates, unionKeys(idx.authorIndex, authorKeys(idx.cfg, query.MainAuthor, query.LanguageCode)))
	}

	publisherCandidates := make(map[int]struct{})
	if query.Publisher != "" {
		publisherCandidates = unionKeys(idx.publisherIndex, publisherKeys(idx.cfg, query.Publisher, query.LanguageCode))
	}

	yearCandidates := make(map[int]struct{})
	if query.Year != 0 {
		for offset := -yearTolerance; offset <= yearTolerance; offset++ {
			if e, ok := idx.yearIndex[query.Year+offset]; ok && !e.isEmpty() {
				mergeInto(yearCandidates, e.ids())
			}
		}
	}

	if len(yearCandidates) > 0 {
		candidates := copySet(yearCandidates)

		if len(titleCandidates) > 0 {
			candidates = intersect(candidates, titleCandidates)

			if len(candidates) > 0 && len(authorCandidates) > 0 {
				if titleAuthor := intersect(candidates, authorCandidates); len(titleAuthor) > 0 {
					candidates = titleAuthor

					if len(publisherCandidates) > 0 {
						if withPublisher := intersect(candidates, publisherCandidates); len(withPublisher) > 0 {
							candidates = withPublisher
						}
					}
				}
			}
		} else if len(authorCandidates) > 0 {
			candidates = intersect(candidates, authorCandidates)
		} else if len(publisherCandidates) > 0 {
			candidates = intersect(candidates, publisherCandidates)
		}

		return candidates
	}

	// No year on the query: title becomes the primary filter.
	if len(titleCandidates) > 0 {
		candidates := copySet(titleCandidates)
		if len(authorCandidates) > 0 {
			candidates = intersect(candidates, authorCandidates)
		}
		return candidates
	}
	if len(authorCandidates) > 0 {
		return copySet(authorCandidates)
	}
	return make(map[int]struct{})
}

// CandidateList resolves Candidates into the underlying Publication values.
func (idx *Index) CandidateList(query *pub.Publication, yearTolerance int) []*pub.Publication {
	ids := idx.Candidates(query, yearTolerance)
	out := make([]*pub.Publication, 0, len(ids))
	for id := range ids {
		out = append(out, idx.publications[id])
	}
	return out
}

// Stats mirrors get_stats for run-summary reporting.
type Stats struct {
	TotalPublications int
	TitleKeys         int
	AuthorKeys        int
	PublisherKeys     int
	YearKeys          int
	LCCNKeys          int
}

func (idx *Index) Stats() Stats {
	return Stats{
		TotalPublications: len(idx.publications),
		TitleKeys:         len(idx.titleIndex),
		AuthorKeys:        len(idx.authorIndex),
		PublisherKeys:     len(idx.publisherIndex),
		YearKeys:          len(idx.yearIndex),
		LCCNKeys:          len(idx.lccnIndex),
	}
}

func addTo(m map[string]*entry, key string, id int) {
	e, ok := m[key]
	if !ok {
		e = newEntry()
		m[key] = e
	}
	e.add(id)
}

func addToInt(m map[int]*entry, key int, id int) {
	e, ok := m[key]
	if !ok {
		e = newEntry()
		m[key] = e
	}
	e.add(id)
}

func unionKeys(m map[string]*entry, keys map[string]struct{}) map[int]struct{} {
	out := make(map[int]struct{})
	for key := range keys {
		if e, ok := m[key]; ok && !e.isEmpty() {
			mergeInto(out, e.ids())
		}
	}
	return out
}

func mergeInto(dst, src map[int]struct{}) {
	for id := range src {
		dst[id] = struct{}{}
	}
}

func copySet(src map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{}, len(src))
	for id := range src {
		out[id] = struct{}{}
	}
	return out
}

func intersect(a, b map[int]struct{}) map[int]struct{} {
	small, big := a, b
	if len(b) < len(a) {
		small, big = b, a
	}
	out := make(map[int]struct{})
	for id := range small {
		if _, ok := big[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}
