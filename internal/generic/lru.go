package generic

import "container/list"

// lru is a bounded least-recently-used cache keyed by (title, language),
// hand-rolled per spec §9's instruction to not rely on language-level
// memoizing decorators (the source uses functools.lru_cache). Grounded
// structurally on eutils/misc.go's mutex-guarded package map idiom, combined
// with an intrusive doubly-linked list for eviction order, which is the
// standard idiomatic Go LRU shape.
type lru struct {
	capacity int
	ll       *list.List
	items    map[lruKey]*list.Element
}

type lruKey struct {
	title    string
	language string
}

type lruEntry struct {
	key   lruKey
	value bool
}

func newLRU(capacity int) *lru {
	if capacity <= 0 {
		capacity = 1
	}
	return &lru{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[lruKey]*list.Element, capacity),
	}
}

func (c *lru) get(title, language string) (bool, bool) {
	key := lruKey{title, language}
	el, ok := c.items[key]
	if !ok {
		return false, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*lruEntry).value, true
}

func (c *lru) put(title, language string, value bool) {
	key := lruKey{title, language}
	if el, ok := c.items[key]; ok {
		el.Value.(*lruEntry).value = value
		c.ll.MoveToFront(el)
		return
	}
	el := c.ll.PushFront(&lruEntry{key: key, value: value})
	c.items[key] = el
	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.items, oldest.Value.(*lruEntry).key)
		}
	}
}
