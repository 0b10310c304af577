package indirection

import "slices"

type (
	// Linear is an array backed [Cache] for sessions with few entries.
	// Lookups scan from the position of the previous hit,
	// so repeated references to nearby objects stay cheap.
	// Unlike [Hash], it also supports reverse lookups by offset.
	// Concurrent access must be guarded by the caller.
	// Constructed by [NewLinear].
	Linear struct {
		pools     *Pools
		bundle    *linearBundle
		count     int
		lastFound int // Index of the latest hit; scans start here.
		// ascending is true while every recorded
		// offset is >= the one recorded before it.
		ascending bool
	}
	linearBundle struct {
		keys   []Key
		values []int32
	}
)

const (
	// LinearInitialCapacity is the number of slots of newly allocated linear storage.
	LinearInitialCapacity = 16
	// LinearGrowth is the number of slots added each time linear storage fills up.
	LinearGrowth = 10
)

// NewLinear creates a [Linear] cache,
// reusing storage from pools when available.
func NewLinear(pools *Pools) *Linear {
	bundle, ok := pools.linear.Acquire()
	if !ok {
		bundle = newLinearBundle(LinearInitialCapacity)
	}
	return &Linear{
		pools:     pools,
		bundle:    bundle,
		ascending: true,
	}
}

func newLinearBundle(capacity int) *linearBundle {
	return &linearBundle{
		keys:   make([]Key, capacity),
		values: make([]int32, capacity),
	}
}

// Put records offset for key.
// A nil key is ignored. Putting a key again with the same offset
// is a no-op, with a different offset it returns [ErrDuplicateOffset].
func (c *Linear) Put(key Key, offset int32) error {
	c.mustBeLive()
	if key.IsNil() {
		return nil
	}
	if offset < 0 {
		return invalidOffsetError(offset)
	}
	if i := c.indexOfKey(key); i >= 0 {
		if recorded := c.bundle.values[i]; recorded != offset {
			return duplicateOffsetError(recorded, offset)
		}
		return nil
	}
	if c.count == len(c.bundle.keys) {
		c.grow()
	}
	if c.count > 0 &&
		offset < c.bundle.values[c.count-1] {
		c.ascending = false
	}
	c.bundle.keys[c.count] = key
	c.bundle.values[c.count] = offset
	c.count++
	return nil
}

// grow moves the entries into fresh, larger storage
// and offers the old storage to the pool.
func (c *Linear) grow() {
	var (
		old  = c.bundle
		next = newLinearBundle(c.count + LinearGrowth)
	)
	copy(next.keys, old.keys[:c.count])
	copy(next.values, old.values[:c.count])
	c.bundle = next
	c.release(old)
}

// Contains reports whether key has been recorded.
func (c *Linear) Contains(key Key) bool {
	c.mustBeLive()
	return c.indexOfKey(key) >= 0
}

// Offset returns the offset recorded for key, or [NoOffset].
func (c *Linear) Offset(key Key) int32 {
	c.mustBeLive()
	if i := c.indexOfKey(key); i >= 0 {
		return c.bundle.values[i]
	}
	return NoOffset
}

// ContainsOffset reports whether any key was recorded at offset.
func (c *Linear) ContainsOffset(offset int32) bool {
	c.mustBeLive()
	return c.indexOfValue(offset) >= 0
}

// Lookup returns the key recorded at offset.
func (c *Linear) Lookup(offset int32) (Key, bool) {
	c.mustBeLive()
	if i := c.indexOfValue(offset); i >= 0 {
		return c.bundle.keys[i], true
	}
	return Key{}, false
}

// ContainsOrderedOffset is like [Linear.ContainsOffset] but uses a binary search,
// which requires offsets to have been put in ascending order.
// Decoders satisfy this naturally, since they record offsets as they read.
// If any offset was put out of order, the linear scan is used instead.
func (c *Linear) ContainsOrderedOffset(offset int32) bool {
	c.mustBeLive()
	if !c.ascending {
		return c.indexOfValue(offset) >= 0
	}
	values := c.bundle.values[:c.count]
	if debugging {
		assert(slices.IsSorted(values),
			"ordered lookup over unsorted offsets")
	}
	_, found := slices.BinarySearch(values, offset)
	return found
}

// Len returns the number of recorded keys.
func (c *Linear) Len() int {
	c.mustBeLive()
	return c.count
}

// Done returns the cache's storage to its pool.
// The cache must not be used afterwards, other than calling Done again.
func (c *Linear) Done() {
	if c.bundle == nil {
		return
	}
	c.release(c.bundle)
	c.bundle = nil
	c.count = 0
	c.lastFound = 0
}

// release drops the object references held by bundle,
// then offers it to the pool.
// Only the first c.count slots can be populated.
func (c *Linear) release(bundle *linearBundle) {
	clear(bundle.keys[:min(c.count, len(bundle.keys))])
	c.pools.linear.Release(bundle)
}

func (c *Linear) mustBeLive() {
	if c.bundle == nil {
		panic(ErrReleased)
	}
}

func (c *Linear) indexOfKey(key Key) int {
	return scanFrom(c.bundle.keys[:c.count], key, &c.lastFound)
}

func (c *Linear) indexOfValue(offset int32) int {
	return scanFrom(c.bundle.values[:c.count], offset, &c.lastFound)
}

// scanFrom searches entries for want, starting at *hint and
// wrapping around to the front. A hit is stored back into hint.
func scanFrom[T comparable](entries []T, want T, hint *int) int {
	start := min(*hint, len(entries))
	for i := start; i < len(entries); i++ {
		if entries[i] == want {
			*hint = i
			return i
		}
	}
	for i := range start {
		if entries[i] == want {
			*hint = i
			return i
		}
	}
	return -1
}
