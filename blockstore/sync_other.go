//go:build !linux

package blockstore

import "fmt"

// Sync flushes file contents to stable storage.
func (s *FileStore) Sync() error {
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("blockstore: sync: %w", err)
	}
	return nil
}
