package board

import "container/list"

// MoveCache is a small fixed-capacity LRU cache of legal-move lists keyed
// by effective FEN, per spec.md §5 and §9's caching note. Grounded on the
// teacher's pkg/board/movelist.go move-ordering structure: that file pairs
// container/heap with a small priority struct to order a move list;
// MoveCache pairs the standard library's other list-ordering structure,
// container/list, with a map for O(1) recency-ordered lookup/eviction,
// the idiomatic Go shape for a bounded LRU.
type MoveCache struct {
	capacity int
	ll       *list.List
	index    map[string]*list.Element
}

type moveCacheEntry struct {
	key   string
	moves []Move
}

// NewMoveCache returns an empty cache holding at most capacity entries.
func NewMoveCache(capacity int) *MoveCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &MoveCache{
		capacity: capacity,
		ll:       list.New(),
		index:    map[string]*list.Element{},
	}
}

// Get returns the cached move list for key, if present, moving it to the
// most-recently-used position.
func (c *MoveCache) Get(key string) ([]Move, bool) {
	el, ok := c.index[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*moveCacheEntry).moves, true
}

// Put stores moves under key, evicting the least-recently-used entry if
// the cache is at capacity. Overwrites and refreshes an existing key.
func (c *MoveCache) Put(key string, moves []Move) {
	if el, ok := c.index[key]; ok {
		el.Value.(*moveCacheEntry).moves = moves
		c.ll.MoveToFront(el)
		return
	}
	el := c.ll.PushFront(&moveCacheEntry{key: key, moves: moves})
	c.index[key] = el
	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.index, oldest.Value.(*moveCacheEntry).key)
		}
	}
}

// Len returns the number of entries currently cached.
func (c *MoveCache) Len() int {
	return c.ll.Len()
}

// Clear empties the cache.
func (c *MoveCache) Clear() {
	c.ll.Init()
	c.index = map[string]*list.Element{}
}
