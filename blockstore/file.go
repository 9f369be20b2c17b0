package blockstore

import (
	"fmt"
	"os"
)

// FileStore is a BlockStore persisted in a local file, preserving NOR
// program/erase semantics across restarts. It is useful for host-side
// tooling that replays or inspects device regions, and as a durable
// stand-in for flash in integration tests.
//
// Writes are read-modify-AND so a FileStore behaves exactly like flash:
// programming can only clear bits, and erase restores a whole unit to 0xFF.
type FileStore struct {
	f        *os.File
	capacity int64
}

// OpenFile opens or creates a file-backed region at path.
//
// A new file is created fully erased (0xFF) at the given capacity, which
// must be a positive multiple of EraseUnitSize. An existing file must
// already have exactly that size.
func OpenFile(path string, capacity int64) (*FileStore, error) {
	if capacity <= 0 || capacity%EraseUnitSize != 0 {
		return nil, fmt.Errorf("%w: capacity %d", ErrUnaligned, capacity)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600) //nolint:gosec // G304: path is caller-controlled by design
	if err != nil {
		return nil, fmt.Errorf("blockstore: failed to open region file: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("blockstore: failed to stat region file: %w", err)
	}

	switch st.Size() {
	case 0:
		// Fresh file: fill with the erased pattern one unit at a time.
		unit := make([]byte, EraseUnitSize)
		for i := range unit {
			unit[i] = 0xFF
		}
		for off := int64(0); off < capacity; off += EraseUnitSize {
			if _, err := f.WriteAt(unit, off); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("blockstore: failed to initialize region file: %w", err)
			}
		}
	case capacity:
		// Existing region, size matches.
	default:
		_ = f.Close()
		return nil, fmt.Errorf("blockstore: region file %s has size %d, want %d", path, st.Size(), capacity)
	}

	return &FileStore{f: f, capacity: capacity}, nil
}

// ReadAt fills p with the bytes stored at off.
func (s *FileStore) ReadAt(p []byte, off int64) error {
	if err := checkRange(s.capacity, off, len(p)); err != nil {
		return err
	}
	if _, err := s.f.ReadAt(p, off); err != nil {
		return fmt.Errorf("blockstore: read at %#x: %w", off, err)
	}
	return nil
}

// WriteAt programs p at off with AND semantics.
func (s *FileStore) WriteAt(p []byte, off int64) error {
	if err := checkRange(s.capacity, off, len(p)); err != nil {
		return err
	}
	old := make([]byte, len(p))
	if _, err := s.f.ReadAt(old, off); err != nil {
		return fmt.Errorf("blockstore: read-modify-write at %#x: %w", off, err)
	}
	for i := range old {
		old[i] &= p[i]
	}
	if _, err := s.f.WriteAt(old, off); err != nil {
		return fmt.Errorf("blockstore: write at %#x: %w", off, err)
	}
	return nil
}

// Erase resets length bytes at off to 0xFF.
func (s *FileStore) Erase(off, length int64) error {
	if err := checkErase(s.capacity, off, length); err != nil {
		return err
	}
	unit := make([]byte, EraseUnitSize)
	for i := range unit {
		unit[i] = 0xFF
	}
	for o := off; o < off+length; o += EraseUnitSize {
		if _, err := s.f.WriteAt(unit, o); err != nil {
			return fmt.Errorf("blockstore: erase at %#x: %w", o, err)
		}
	}
	return nil
}

// Capacity returns the region size in bytes.
func (s *FileStore) Capacity() int64 {
	return s.capacity
}

// Close syncs and closes the backing file.
func (s *FileStore) Close() error {
	if err := s.Sync(); err != nil {
		_ = s.f.Close()
		return err
	}
	return s.f.Close()
}
