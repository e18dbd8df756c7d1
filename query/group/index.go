package group

// index maps keys to positions in an append-only list owned by the caller.
type index[K any] interface {
	find(key K) (int, bool)
	add(key K, pos int)
}

// mapIndex uses Go equality and the runtime's hashing.
type mapIndex[K comparable] map[K]int

func (m mapIndex[K]) find(key K) (int, bool) {
	pos, ok := m[key]
	return pos, ok
}

func (m mapIndex[K]) add(key K, pos int) {
	m[key] = pos
}

// hashIndex uses a Hasher for keys Go cannot compare. Positions are
// bucketed by hash; collisions are resolved with Hasher.Equal against the
// key stored at each position.
type hashIndex[K any] struct {
	hasher  Hasher[K]
	buckets map[uint64][]int
	keyAt   func(pos int) K
}

func newHashIndex[K any](hasher Hasher[K], keyAt func(int) K) *hashIndex[K] {
	return &hashIndex[K]{hasher: hasher, buckets: make(map[uint64][]int), keyAt: keyAt}
}

func (h *hashIndex[K]) find(key K) (int, bool) {
	for _, pos := range h.buckets[h.hasher.Hash(key)] {
		if h.hasher.Equal(h.keyAt(pos), key) {
			return pos, true
		}
	}
	return 0, false
}

func (h *hashIndex[K]) add(key K, pos int) {
	sum := h.hasher.Hash(key)
	h.buckets[sum] = append(h.buckets[sum], pos)
}

// keySet is a membership-only store: the grouping primitive with the
// values discarded. It backs the set operations.
type keySet[K any] struct {
	idx  index[K]
	keys []K
}

func newKeySet[K comparable]() *keySet[K] {
	return &keySet[K]{idx: mapIndex[K]{}}
}

func newHashedKeySet[K any](hasher Hasher[K]) *keySet[K] {
	s := &keySet[K]{}
	s.idx = newHashIndex(hasher, func(pos int) K { return s.keys[pos] })
	return s
}

// add inserts key and reports whether it was absent.
func (s *keySet[K]) add(key K) bool {
	if _, ok := s.idx.find(key); ok {
		return false
	}
	s.idx.add(key, len(s.keys))
	s.keys = append(s.keys, key)
	return true
}

func (s *keySet[K]) contains(key K) bool {
	_, ok := s.idx.find(key)
	return ok
}
