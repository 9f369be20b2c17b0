// Package blockstore provides block-addressed storage with NOR-flash program
// and erase semantics.
//
// A BlockStore models a flash region: reads are unrestricted, writes can only
// program bits from 1 to 0, and clearing bits back to 1 requires erasing a
// whole aligned 4096-byte unit. Two implementations are provided:
//
//   - MemoryStore: in-RAM region for tests and simulation, with fault
//     injection and an erase counter
//   - FileStore: region persisted in a local file, preserving the same
//     program/erase semantics across process restarts
//
// Partition discovery mirrors embedded partition tables: a Table (loaded from
// YAML) maps names and types to offset/size windows, and Open returns a
// Partition view restricted to that window.
//
// # Custom Implementations
//
// Implement the BlockStore interface to bind a real flash driver:
//
//	type BlockStore interface {
//	    ReadAt(p []byte, off int64) error
//	    WriteAt(p []byte, off int64) error  // program 1->0 only
//	    Erase(off, length int64) error      // aligned, resets to 0xFF
//	    Capacity() int64
//	}
package blockstore
