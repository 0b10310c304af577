package indirection

type (
	// Hash is a bucketed [Cache] for sessions with many entries.
	// Each bucket holds one entry directly and chains any colliding entries.
	// Concurrent access must be guarded by the caller.
	// Constructed by [NewHash].
	Hash struct {
		pools            *Pools
		bundle           *hashBundle
		count, threshold int
	}
	// hashBundle holds parallel bucket arrays.
	// A bucket is occupied iff its key is not nil,
	// and only occupied buckets have valid values, hashes, and chains.
	hashBundle struct {
		keys     []Key
		values   []int32
		hashes   []uint32
		chains   []int32 // Index into overflow or [noChain].
		overflow []chainNode
	}
	chainNode struct {
		key   Key
		value int32
		hash  uint32
		next  int32
	}
)

const (
	// HashInitialCapacity is the number of buckets of newly allocated hash storage.
	HashInitialCapacity = 101
	// HashGrowth is the number of buckets added on each rehash.
	HashGrowth = 101

	noChain = -1
)

// NewHash creates a [Hash] cache,
// reusing storage from pools when available.
func NewHash(pools *Pools) *Hash {
	bundle, ok := pools.hash.Acquire()
	if !ok {
		bundle = newHashBundle(HashInitialCapacity)
	}
	if debugging {
		assert(bundle.isEmpty(),
			"pooled hash storage was not cleared")
	}
	return &Hash{
		pools:     pools,
		bundle:    bundle,
		threshold: thresholdOf(len(bundle.keys)),
	}
}

func newHashBundle(capacity int) *hashBundle {
	return &hashBundle{
		keys:   make([]Key, capacity),
		values: make([]int32, capacity),
		hashes: make([]uint32, capacity),
		chains: make([]int32, capacity),
	}
}

// thresholdOf returns the entry count at which
// a table of capacity buckets must grow (3/4 load).
func thresholdOf(capacity int) int { return capacity * 3 / 4 }

// Put records offset for key.
// A nil key is ignored. Putting a key again with the same offset
// is a no-op, with a different offset it returns [ErrDuplicateOffset].
func (c *Hash) Put(key Key, offset int32) error {
	c.mustBeLive()
	if key.IsNil() {
		return nil
	}
	if offset < 0 {
		return invalidOffsetError(offset)
	}
	hash := key.hash()
	if recorded, ok := c.bundle.find(key, hash); ok {
		if recorded != offset {
			return duplicateOffsetError(recorded, offset)
		}
		return nil
	}
	if c.count == c.threshold {
		c.rehash()
	}
	c.bundle.insert(key, offset, hash)
	c.count++
	if debugging {
		assert(c.count <= len(c.bundle.keys)+len(c.bundle.overflow),
			"entry count exceeds storage")
	}
	return nil
}

// rehash moves every entry into a larger table,
// reusing the hashes computed when the entries were put.
func (c *Hash) rehash() {
	var (
		old  = c.bundle
		next = newHashBundle(len(old.keys) + HashGrowth)
	)
	for i, key := range old.keys {
		if key.IsNil() {
			continue
		}
		next.insert(key, old.values[i], old.hashes[i])
		for n := old.chains[i]; n != noChain; {
			node := &old.overflow[n]
			next.insert(node.key, node.value, node.hash)
			n = node.next
		}
	}
	c.bundle = next
	c.threshold = thresholdOf(len(next.keys))
	c.release(old)
}

// Contains reports whether key has been recorded.
func (c *Hash) Contains(key Key) bool {
	c.mustBeLive()
	_, ok := c.bundle.find(key, key.hash())
	return ok
}

// Offset returns the offset recorded for key, or [NoOffset].
func (c *Hash) Offset(key Key) int32 {
	c.mustBeLive()
	if offset, ok := c.bundle.find(key, key.hash()); ok {
		return offset
	}
	return NoOffset
}

// Len returns the number of recorded keys.
func (c *Hash) Len() int {
	c.mustBeLive()
	return c.count
}

// Done clears the cache's keys and returns its storage to its pool.
// The cache must not be used afterwards, other than calling Done again.
func (c *Hash) Done() {
	if c.bundle == nil {
		return
	}
	c.release(c.bundle)
	c.bundle = nil
	c.count = 0
	c.threshold = 0
}

func (c *Hash) release(bundle *hashBundle) {
	bundle.reset()
	c.pools.hash.Release(bundle)
}

func (c *Hash) mustBeLive() {
	if c.bundle == nil {
		panic(ErrReleased)
	}
}

func (b *hashBundle) bucket(hash uint32) int {
	return int((hash & 0x7FFFFFFF) % uint32(len(b.keys)))
}

func (b *hashBundle) find(key Key, hash uint32) (int32, bool) {
	if key.IsNil() {
		return NoOffset, false
	}
	i := b.bucket(hash)
	switch primary := b.keys[i]; {
	case primary.IsNil():
		// Chains only exist behind an occupied bucket.
		return NoOffset, false
	case primary == key:
		return b.values[i], true
	}
	for n := b.chains[i]; n != noChain; {
		node := &b.overflow[n]
		if node.hash == hash && node.key == key {
			return node.value, true
		}
		n = node.next
	}
	return NoOffset, false
}

func (b *hashBundle) insert(key Key, value int32, hash uint32) {
	i := b.bucket(hash)
	if b.keys[i].IsNil() {
		b.keys[i] = key
		b.values[i] = value
		b.hashes[i] = hash
		b.chains[i] = noChain
		return
	}
	b.overflow = append(b.overflow, chainNode{
		key:   key,
		value: value,
		hash:  hash,
		next:  b.chains[i],
	})
	b.chains[i] = int32(len(b.overflow) - 1)
}

// reset clears every key so that no bucket reads as occupied.
// Values, hashes, and chain heads are left as is.
func (b *hashBundle) reset() {
	clear(b.keys)
	clear(b.overflow)
	b.overflow = b.overflow[:0]
}

func (b *hashBundle) isEmpty() bool {
	for _, key := range b.keys {
		if !key.IsNil() {
			return false
		}
	}
	return len(b.overflow) == 0
}
