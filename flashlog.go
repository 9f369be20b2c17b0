package flashlog

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/flashlog/blockstore"
	"github.com/hupe1980/flashlog/internal/ring"
)

// Log is a circular log of fixed-size entries stored in a flash region.
//
// The cursor state (oldest, newest, current, in-use count, highest sequence
// number) lives only in RAM. It is rebuilt by scanning slot headers on every
// Open, never persisted: the slots themselves are the index. The region
// header is written once at initialization and never updated afterwards,
// which keeps header wear at zero no matter how many entries are appended.
//
// A Log is single-threaded and non-reentrant. Exactly one open Log per
// region is assumed; the design provides no internal locking.
type Log struct {
	store blockstore.BlockStore
	ring  ring.Ring

	// buf holds one full slot: 4-byte sequence header plus payload.
	// Payload() exposes the payload view. nil means closed.
	buf []byte

	payloadSize int
	slotCount   int

	highestSeq uint32
	inUse      int
	oldest     int
	newest     int
	current    int

	logger      *Logger
	metrics     MetricsCollector
	compression Compression
}

// Open opens the log in the given region, initializing it if needed.
//
// payloadSize is the user data size per entry; payloadSize+4 must be a power
// of two no larger than the 4096-byte erase unit, so one of 4, 12, 28, 60,
// 124, 252, 508, 1020, 2044, or 4092.
//
// If the region holds no recognizable header, or holds one recorded with a
// different payload size, the whole region is erased and reinitialized and
// all prior entries are lost. Otherwise the cursor state is recovered by a
// linear scan of every slot header.
func Open(store blockstore.BlockStore, payloadSize int, optFns ...Option) (*Log, error) {
	if !validSlotSize(payloadSize) {
		return nil, &InvalidSlotSizeError{PayloadSize: payloadSize}
	}

	opts := applyOptions(optFns)

	capacity := store.Capacity()
	slotSize := int64(payloadSize + slotHeaderSize)
	if capacity%EraseUnitSize != 0 || capacity < slot0Offset+EraseUnitSize {
		return nil, fmt.Errorf("%w: capacity %d", ErrInvalidRegion, capacity)
	}

	l := &Log{
		store:       store,
		payloadSize: payloadSize,
		logger:      opts.logger,
		metrics:     opts.metrics,
		compression: opts.compression,
	}

	hdrBuf := make([]byte, headerSize)
	if err := store.ReadAt(hdrBuf, 0); err != nil {
		return nil, readError(0, err)
	}

	hdr, ok := decodeRegionHeader(hdrBuf)
	// A header whose slot count cannot fit the region is garbage (e.g. the
	// region was re-partitioned); treat it like a payload size mismatch.
	if ok && (hdr.slotCount == 0 || slot0Offset+int64(hdr.slotCount)*slotSize > capacity) {
		ok = false
	}
	if !ok || int(hdr.payloadSize) != payloadSize {
		if err := l.reinitialize(capacity, slotSize); err != nil {
			return nil, err
		}
	} else {
		l.slotCount = int(hdr.slotCount)
		l.ring = ring.New(l.slotCount)
		if err := l.recover(); err != nil {
			return nil, err
		}
	}

	l.current = l.newest
	l.buf = make([]byte, slotSize)
	return l, nil
}

// OpenPartition resolves a region through a partition table and opens the
// log in it. An empty name selects the first partition of type "log",
// matching the discovery behavior of embedded partition tables.
func OpenPartition(parent blockstore.BlockStore, table *blockstore.Table, name string, payloadSize int, optFns ...Option) (*Log, error) {
	part, err := table.Open(parent, name)
	if err != nil {
		if errors.Is(err, blockstore.ErrPartitionNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrRegionNotFound, err)
		}
		return nil, err
	}
	return Open(part, payloadSize, optFns...)
}

// reinitialize erases the whole region and writes a fresh header.
// Destroys all prior entries.
func (l *Log) reinitialize(capacity, slotSize int64) error {
	if err := l.store.Erase(0, capacity); err != nil {
		return eraseError(0, err)
	}
	l.slotCount = int((capacity - slot0Offset) / slotSize)
	hdr := encodeRegionHeader(regionHeader{
		payloadSize: uint32(l.payloadSize), //nolint:gosec
		slotCount:   uint32(l.slotCount),   //nolint:gosec
	})
	if err := l.store.WriteAt(hdr, 0); err != nil {
		return writeError(0, err)
	}
	l.ring = ring.New(l.slotCount)
	l.highestSeq = 0
	l.inUse = 0
	l.oldest, l.newest = 0, 0
	l.logger.LogReinitialize(l.payloadSize, l.slotCount)
	return nil
}

// recover rebuilds the cursor state from slot headers.
//
// One small read per slot: the oldest entry carries the minimum sequence
// number, the newest the maximum. No positional assumption is made, since
// eviction never compacts the ring.
func (l *Log) recover() error {
	start := time.Now()

	var (
		hdr       [slotHeaderSize]byte
		oldestSeq uint32 = unusedSeq
	)
	l.highestSeq = 0
	l.inUse = 0
	l.oldest, l.newest = 0, 0

	for slot := 0; slot < l.slotCount; slot++ {
		off := l.slotOffset(slot)
		if err := l.store.ReadAt(hdr[:], off); err != nil {
			err = readError(off, err)
			l.metrics.RecordRecovery(slot, time.Since(start), err)
			l.logger.LogRecovery(l.slotCount, l.inUse, l.highestSeq, err)
			return err
		}
		seq := binary.LittleEndian.Uint32(hdr[:])
		if seq == unusedSeq {
			continue
		}
		l.inUse++
		if seq > l.highestSeq {
			l.highestSeq = seq
			l.newest = slot
		}
		if seq < oldestSeq {
			oldestSeq = seq
			l.oldest = slot
		}
	}

	l.metrics.RecordRecovery(l.slotCount, time.Since(start), nil)
	l.logger.LogRecovery(l.slotCount, l.inUse, l.highestSeq, nil)
	return nil
}

// slotOffset returns the absolute region offset of a slot.
func (l *Log) slotOffset(slot int) int64 {
	return slot0Offset + int64(slot)*int64(l.payloadSize+slotHeaderSize)
}

// Payload returns the entry buffer view: fill it before Append, read it
// after Read. The buffer is owned by the Log and valid until Close.
// Returns nil on a closed log.
func (l *Log) Payload() []byte {
	if l.buf == nil {
		return nil
	}
	return l.buf[slotHeaderSize:]
}

// Sequence returns the sequence number currently in the entry buffer:
// the entry last read, or last appended. Zero if neither has happened.
func (l *Log) Sequence() uint32 {
	if l.buf == nil {
		return 0
	}
	seq := binary.LittleEndian.Uint32(l.buf[:slotHeaderSize])
	if seq == unusedSeq {
		return 0
	}
	return seq
}

// SlotCount returns the total number of slots in the region.
func (l *Log) SlotCount() int { return l.slotCount }

// Len returns the number of entries currently stored.
func (l *Log) Len() int { return l.inUse }

// PayloadSize returns the user data size per entry.
func (l *Log) PayloadSize() int { return l.payloadSize }

// EntriesPerEraseUnit returns how many entries one eviction removes.
func (l *Log) EntriesPerEraseUnit() int {
	return EraseUnitSize / (l.payloadSize + slotHeaderSize)
}
