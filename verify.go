package flashlog

import (
	"encoding/binary"

	"github.com/RoaringBitmap/roaring/v2"
)

// Verify re-scans every slot header and checks the stored state against the
// in-memory cursor state:
//
//   - the in-use slots form exactly one contiguous wraparound arc starting
//     at the oldest slot
//   - sequence numbers strictly increase along the arc
//   - the arc's bounds and length match the cursor state
//
// It is an offline diagnostic, not part of the hot path: Append and Read
// trust the cursor state between opens. A non-nil *ArcViolationError points
// at the first offending slot.
func (l *Log) Verify() error {
	if l.buf == nil {
		return ErrNotInitialized
	}

	used := roaring.New()
	seqs := make([]uint32, l.slotCount)

	var hdr [slotHeaderSize]byte
	for slot := 0; slot < l.slotCount; slot++ {
		off := l.slotOffset(slot)
		if err := l.store.ReadAt(hdr[:], off); err != nil {
			return readError(off, err)
		}
		seq := binary.LittleEndian.Uint32(hdr[:])
		if seq != unusedSeq {
			used.Add(uint32(slot)) //nolint:gosec
			seqs[slot] = seq
		}
	}

	if used.GetCardinality() != uint64(l.inUse) { //nolint:gosec
		return &ArcViolationError{
			Slot:   l.oldest,
			Reason: "stored entry count does not match cursor state",
		}
	}
	if l.inUse == 0 {
		return nil
	}

	prev := uint32(0)
	for k := 0; k < l.inUse; k++ {
		slot := l.ring.Add(l.oldest, k)
		if !used.Contains(uint32(slot)) { //nolint:gosec
			return &ArcViolationError{Slot: slot, Reason: "gap inside arc"}
		}
		if k > 0 && seqs[slot] <= prev {
			return &ArcViolationError{Slot: slot, Reason: "sequence numbers not strictly increasing"}
		}
		prev = seqs[slot]
	}

	// Cardinality matched and every arc slot is used, so no slot outside
	// the arc can be used either.
	if last := l.ring.Add(l.oldest, l.inUse-1); last != l.newest {
		return &ArcViolationError{Slot: last, Reason: "arc does not end at newest slot"}
	}
	if prev != l.highestSeq {
		return &ArcViolationError{Slot: l.newest, Reason: "newest sequence does not match cursor state"}
	}
	return nil
}
