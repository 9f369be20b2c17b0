package flashlog

import (
	"errors"
	"fmt"
)

var (
	// ErrRegionNotFound is returned when no flash region matches the
	// requested partition name or type.
	ErrRegionNotFound = errors.New("flashlog: region not found")

	// ErrNotInitialized is returned when an operation is attempted before a
	// successful Open or after Close.
	ErrNotInitialized = errors.New("flashlog: log not initialized")

	// ErrInvalidCursor is returned when navigation or read has no valid
	// target: the log is empty, the cursor is already at the end being moved
	// past, or eviction has removed the slot under the cursor.
	//
	// This is expected control flow ("no more entries"), not an I/O failure,
	// and callers commonly loop until they see it.
	ErrInvalidCursor = errors.New("flashlog: no entry at cursor")

	// ErrOutOfMemory is returned when a buffer cannot be sized, e.g. a
	// snapshot header declares more data than the decoder is willing to
	// allocate.
	ErrOutOfMemory = errors.New("flashlog: allocation refused")

	// ErrInvalidRegion is returned when the region capacity is not a
	// positive erase-unit multiple or leaves no room for slots.
	ErrInvalidRegion = errors.New("flashlog: invalid region geometry")

	// ErrReadFailure wraps a failed Block Store read.
	ErrReadFailure = errors.New("flashlog: read failed")

	// ErrWriteFailure wraps a failed Block Store write.
	ErrWriteFailure = errors.New("flashlog: write failed")

	// ErrEraseFailure wraps a failed Block Store erase.
	ErrEraseFailure = errors.New("flashlog: erase failed")
)

// InvalidSlotSizeError indicates a payload size whose slot (payload plus the
// 4-byte slot header) is not a power of two no larger than the erase unit.
//
// Valid payload sizes are therefore 4, 12, 28, 60, 124, 252, 508, 1020,
// 2044, and 4092 bytes.
type InvalidSlotSizeError struct {
	PayloadSize int
}

func (e *InvalidSlotSizeError) Error() string {
	return fmt.Sprintf("flashlog: invalid payload size %d: payload+%d must be a power of two <= %d",
		e.PayloadSize, slotHeaderSize, EraseUnitSize)
}

// ArcViolationError is returned by Verify when the on-flash slot headers do
// not form the contiguous, strictly ordered arc the cursor state describes.
type ArcViolationError struct {
	Slot   int
	Reason string
}

func (e *ArcViolationError) Error() string {
	return fmt.Sprintf("flashlog: arc violation at slot %d: %s", e.Slot, e.Reason)
}

// SnapshotFormatError indicates a malformed or corrupt snapshot stream.
type SnapshotFormatError struct {
	Reason string
	cause  error
}

func (e *SnapshotFormatError) Error() string {
	return fmt.Sprintf("flashlog: bad snapshot: %s", e.Reason)
}

func (e *SnapshotFormatError) Unwrap() error { return e.cause }

// readError tags an underlying store failure as a read failure, keeping the
// store's own detail reachable via errors.Unwrap.
func readError(off int64, err error) error {
	return fmt.Errorf("%w: at %#x: %w", ErrReadFailure, off, err)
}

func writeError(off int64, err error) error {
	return fmt.Errorf("%w: at %#x: %w", ErrWriteFailure, off, err)
}

func eraseError(off int64, err error) error {
	return fmt.Errorf("%w: at %#x: %w", ErrEraseFailure, off, err)
}
