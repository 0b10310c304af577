package indirection

import "fmt"

type constError string

const (
	// ErrDuplicateOffset is returned when a key that is already
	// recorded is put again with a different offset.
	ErrDuplicateOffset = constError("duplicate indirection offset")
	// ErrInvalidOffset is returned when a negative offset is put.
	ErrInvalidOffset = constError("invalid indirection offset")
	// ErrReleased is the panic value for operations
	// on a cache after its Done method was called.
	ErrReleased = constError("indirection cache used after Done")
)

func (errStr constError) Error() string { return string(errStr) }

func duplicateOffsetError(recorded, offset int32) error {
	return fmt.Errorf(
		"%w: key already recorded at %d but %d was requested",
		ErrDuplicateOffset, recorded, offset)
}

func invalidOffsetError(offset int32) error {
	return fmt.Errorf(
		"%w: must be >=0 but %d was requested",
		ErrInvalidOffset, offset)
}
