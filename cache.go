package indirection

// Cache maps object identities to stream offsets for one session.
// It is implemented by [*Linear] and [*Hash];
// reverse lookups by offset are only available on [*Linear].
type Cache interface {
	// Put records offset for key.
	Put(key Key, offset int32) error
	// Contains reports whether key has been recorded.
	Contains(key Key) bool
	// Offset returns the offset recorded for key, or [NoOffset].
	Offset(key Key) int32
	// Len returns the number of recorded keys.
	Len() int
	// Done releases the cache's storage.
	Done()
}

// NoOffset is returned by Offset methods for keys that were never put.
const NoOffset int32 = -1

var (
	_ Cache = (*Linear)(nil)
	_ Cache = (*Hash)(nil)
)

// New creates a [Hash] cache if useHashing is true,
// otherwise a [Linear] cache.
func New(pools *Pools, useHashing bool) Cache {
	if useHashing {
		return NewHash(pools)
	}
	return NewLinear(pools)
}

// Record puts offset for object and, if it differs from object, for alias.
// Encoders use this when the value written for object
// is a replacement, so that either one resolves to the same position.
func Record(cache Cache, offset int32, object, alias Key) error {
	if err := cache.Put(object, offset); err != nil {
		return err
	}
	if alias == object {
		return nil
	}
	return cache.Put(alias, offset)
}
