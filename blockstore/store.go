package blockstore

import "errors"

// EraseUnitSize is the minimum area, in bytes, that can be erased in one
// operation. NOR flash erases whole 4K units; writes may be byte-granular
// but can only clear bits.
const EraseUnitSize = 4096

var (
	// ErrOutOfRange is returned when an access extends past the region.
	ErrOutOfRange = errors.New("blockstore: access out of range")

	// ErrUnaligned is returned when an erase offset or length is not a
	// multiple of EraseUnitSize.
	ErrUnaligned = errors.New("blockstore: erase not aligned to erase unit")

	// ErrPartitionNotFound is returned when no partition matches a lookup.
	ErrPartitionNotFound = errors.New("blockstore: partition not found")
)

// BlockStore is an abstraction over a flash region.
//
// WriteAt must follow NOR program semantics: the stored value becomes the
// bitwise AND of the old and new bytes. Only Erase can set bits back to 1,
// and only across whole aligned erase units.
type BlockStore interface {
	// ReadAt fills p with the bytes stored at off.
	ReadAt(p []byte, off int64) error

	// WriteAt programs p at off. Bits already 0 stay 0.
	WriteAt(p []byte, off int64) error

	// Erase resets length bytes at off to the erased state (0xFF).
	// Both off and length must be multiples of EraseUnitSize.
	Erase(off, length int64) error

	// Capacity returns the region size in bytes.
	Capacity() int64
}

func checkRange(capacity, off int64, n int) error {
	if off < 0 || off+int64(n) > capacity {
		return ErrOutOfRange
	}
	return nil
}

func checkErase(capacity, off, length int64) error {
	if off%EraseUnitSize != 0 || length%EraseUnitSize != 0 || length <= 0 {
		return ErrUnaligned
	}
	if off < 0 || off+length > capacity {
		return ErrOutOfRange
	}
	return nil
}
