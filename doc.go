// Package flashlog implements a circular log of fixed-size entries in
// block-erasable non-volatile memory (NOR flash).
//
// The region is divided into fixed-size slots after a small header written
// once at initialization. Each slot carries a 4-byte sequence number and an
// opaque payload. There is no persisted index: on every Open the logical
// state (oldest, newest, entry count) is recovered by scanning slot
// headers, so the log survives power loss and reprogramming.
//
// Appending into a full ring erases the 4096-byte erase unit holding the
// oldest entries, evicting a whole unit's worth of entries at once. That
// granularity is fixed by the hardware: flash cannot erase a single slot.
//
// # Usage
//
//	store, _ := blockstore.NewMemoryStore(64 * 1024)
//	log, err := flashlog.Open(store, 12)
//	if err != nil { ... }
//	defer log.Close()
//
//	copy(log.Payload(), record)
//	if err := log.Append(); err != nil { ... }
//
//	for err := log.GotoOldest(); err == nil; err = log.GotoNext() {
//	    if err := log.Read(); err != nil { ... }
//	    handle(log.Sequence(), log.Payload())
//	}
//
// A Log is single-threaded and non-reentrant; callers needing concurrency
// must synchronize externally.
package flashlog
