// Package indirection implements the indirection tables used
// when marshaling object graphs to a CDR style stream.
//
// An encoder records the stream offset of every object it writes.
// When the same object is reached again, it writes a back reference
// ("indirection") to that offset instead of the object itself.
// A decoder records the objects it reads by offset, so that it can
// resolve those back references.
//
// Glossary and invariants:
//
//   - Key
//
//     The identity of an object: its address and static type.
//     Two objects with equal contents are still different keys,
//     and so are a struct and its first field.
//
//   - Session
//
//     One marshal or unmarshal traversal.
//     A [Cache] is created at its start and released with Done at its end.
//     A cache belongs to one session and is not safe for concurrent use.
//
//   - Bundle
//
//     The parallel arrays backing a cache.
//     Released bundles are recycled through [Pools].
//
//   - No key is ever recorded with two different offsets.
//
//     Such a put returns [ErrDuplicateOffset];
//     it means the encoder aliased two positions to one object.
//
//   - Misses are not errors.
//
//     Offset returns [NoOffset] and Contains returns false.
//
// Strategies:
//
//   - [Linear]
//
//     Parallel key/offset arrays, scanned starting at the previous hit.
//     Cheap to set up, and the only strategy supporting reverse lookups
//     (offset to key), which decoders need.
//
//   - [Hash]
//
//     Buckets indexed by the identity hash of the key,
//     with chains for collisions. Grows at 3/4 load.
//
// Pools:
//
//   - [Pools] holds one bounded LIFO stack of bundles per strategy.
//     A full pool drops releases, an empty one makes callers allocate;
//     neither is an error.
//
//   - Hash bundles have their keys cleared before they are pooled.
//     Linear bundles are only ever read up to the cache's count.
package indirection
