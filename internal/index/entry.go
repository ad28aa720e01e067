package index

// entry is the compact "one int or a set of ints" index-entry container
// named explicitly in spec §9: a tagged variant {Empty, One(id), Many(ids)}
// rather than a set that always allocates, since the overwhelming majority
// of index keys in a corpus of this size point at a single publication.
// Grounded on original_source indexer.py's CompactIndexEntry, translated
// from its runtime-typed Python union into an explicit Go tag.
type entry struct {
	kind entryKind
	one  int
	many map[int]struct{}
}

type entryKind int

const (
	entryEmpty entryKind = iota
	entryOne
	entryMany
)

func newEntry() *entry {
	return &entry{kind: entryEmpty}
}

// add records id in this entry, promoting Empty->One->Many as needed.
func (e *entry) add(id int) {
	switch e.kind {
	case entryEmpty:
		e.kind = entryOne
		e.one = id
	case entryOne:
		if e.one == id {
			return
		}
		e.many = map[int]struct{}{e.one: {}, id: {}}
		e.kind = entryMany
	case entryMany:
		e.many[id] = struct{}{}
	}
}

// ids returns every ID this entry holds as a fresh set.
func (e *entry) ids() map[int]struct{} {
	switch e.kind {
	case entryEmpty:
		return nil
	case entryOne:
		return map[int]struct{}{e.one: {}}
	default:
		out := make(map[int]struct{}, len(e.many))
		for id := range e.many {
			out[id] = struct{}{}
		}
		return out
	}
}

func (e *entry) isEmpty() bool {
	return e == nil || e.kind == entryEmpty
}
