package indirection

import (
	"encoding/binary"
	"reflect"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// Key is an opaque identity handle for an object.
// Two keys are equal only if they were made from the same pointer
// of the same type, regardless of the contents of the objects they refer to.
// A struct and its first field share an address but not a type,
// so they are different keys.
// Keys made from nil pointers are nil keys; [Cache.Put] ignores them.
type Key struct {
	pointer unsafe.Pointer
	typ     reflect.Type
}

// KeyOf returns the identity handle of object.
// A Key keeps its object reachable for as long as it is held.
//
// Pointers to distinct zero-sized values may compare equal in Go,
// and so may their keys.
func KeyOf[T any](object *T) Key {
	return Key{
		pointer: unsafe.Pointer(object),
		typ:     reflect.TypeFor[T](),
	}
}

// IsNil reports whether k is a nil key.
func (k Key) IsNil() bool { return k.pointer == nil }

// Pointer returns the address k was made from.
func (k Key) Pointer() unsafe.Pointer { return k.pointer }

// Type returns the type of the object k was made from,
// or nil for the zero Key.
func (k Key) Type() reflect.Type { return k.typ }

// hash returns the identity hash of k.
// Go does not move heap objects, so the address is stable
// for the lifetime of the object.
func (k Key) hash() uint32 {
	var identity [16]byte
	binary.LittleEndian.PutUint64(identity[:8], uint64(uintptr(k.pointer)))
	if k.typ != nil {
		// Types are unique per process; the descriptor's address identifies it.
		binary.LittleEndian.PutUint64(identity[8:],
			uint64(reflect.ValueOf(k.typ).Pointer()))
	}
	sum := xxhash.Sum64(identity[:])
	return uint32(sum ^ sum>>32)
}
