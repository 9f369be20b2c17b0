package blockstore

import "fmt"

// MemoryStore is an in-RAM BlockStore for testing and simulation.
// It models NOR flash faithfully: bytes start erased (0xFF), writes AND
// into the existing contents, and only Erase restores bits to 1.
//
// Fault injection via FailReads/FailWrites/FailErases lets tests exercise
// the caller's error paths without a real flash driver.
type MemoryStore struct {
	data []byte

	readErr  error
	writeErr error
	eraseErr error

	eraseCount int
}

// NewMemoryStore creates a blank (fully erased) store of the given capacity.
// capacity must be a positive multiple of EraseUnitSize.
func NewMemoryStore(capacity int64) (*MemoryStore, error) {
	if capacity <= 0 || capacity%EraseUnitSize != 0 {
		return nil, fmt.Errorf("%w: capacity %d", ErrUnaligned, capacity)
	}
	data := make([]byte, capacity)
	for i := range data {
		data[i] = 0xFF
	}
	return &MemoryStore{data: data}, nil
}

// ReadAt fills p with the bytes stored at off.
func (m *MemoryStore) ReadAt(p []byte, off int64) error {
	if m.readErr != nil {
		return m.readErr
	}
	if err := checkRange(m.Capacity(), off, len(p)); err != nil {
		return err
	}
	copy(p, m.data[off:])
	return nil
}

// WriteAt programs p at off with AND semantics.
func (m *MemoryStore) WriteAt(p []byte, off int64) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if err := checkRange(m.Capacity(), off, len(p)); err != nil {
		return err
	}
	for i, b := range p {
		m.data[off+int64(i)] &= b
	}
	return nil
}

// Erase resets length bytes at off to 0xFF.
func (m *MemoryStore) Erase(off, length int64) error {
	if m.eraseErr != nil {
		return m.eraseErr
	}
	if err := checkErase(m.Capacity(), off, length); err != nil {
		return err
	}
	for i := off; i < off+length; i++ {
		m.data[i] = 0xFF
	}
	m.eraseCount++
	return nil
}

// Capacity returns the region size in bytes.
func (m *MemoryStore) Capacity() int64 {
	return int64(len(m.data))
}

// FailReads makes every subsequent ReadAt return err. Pass nil to clear.
func (m *MemoryStore) FailReads(err error) { m.readErr = err }

// FailWrites makes every subsequent WriteAt return err. Pass nil to clear.
func (m *MemoryStore) FailWrites(err error) { m.writeErr = err }

// FailErases makes every subsequent Erase return err. Pass nil to clear.
func (m *MemoryStore) FailErases(err error) { m.eraseErr = err }

// EraseCount returns the number of successful erase operations, a proxy for
// flash wear in tests.
func (m *MemoryStore) EraseCount() int { return m.eraseCount }

// Bytes returns the backing slice. Intended for test assertions only; the
// slice is valid until the store is garbage collected.
func (m *MemoryStore) Bytes() []byte { return m.data }
