//go:build linux

package blockstore

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Sync flushes file contents to stable storage.
// Uses fdatasync: region metadata (size, mode) never changes after creation,
// so flushing data pages alone is sufficient and cheaper.
func (s *FileStore) Sync() error {
	if err := unix.Fdatasync(int(s.f.Fd())); err != nil {
		return fmt.Errorf("blockstore: fdatasync: %w", err)
	}
	return nil
}
