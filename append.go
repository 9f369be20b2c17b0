package flashlog

import (
	"encoding/binary"
	"time"
)

// Append writes the contents of Payload() as the newest entry.
//
// The target is always the slot immediately after the current newest; there
// is never a scan for a free slot. When the ring is full, the aligned erase
// unit containing the target is erased first, which removes
// EntriesPerEraseUnit oldest entries in one step. Eviction granularity is a
// hardware fact: flash cannot erase a single slot.
//
// Cursor bookkeeping commits only after the corresponding I/O succeeds. A
// successful eviction erase is committed even if the following write fails,
// because the flash contents really did change.
func (l *Log) Append() error {
	start := time.Now()
	err := l.append()
	l.metrics.RecordAppend(time.Since(start), err)
	return err
}

func (l *Log) append() error {
	if l.buf == nil {
		return ErrNotInitialized
	}

	target := l.newest
	if l.inUse > 0 {
		target = l.ring.Next(l.newest)
	}
	off := l.slotOffset(target)

	if l.inUse == l.slotCount {
		// Full ring: the target slot is the oldest entry, and because the
		// ring advances in whole erase units it sits at an erase-unit
		// boundary. Erasing that unit frees the target plus the
		// entriesPerUnit-1 entries after it, all of them the oldest.
		eraseOff := off &^ int64(EraseUnitSize-1)
		eraseStart := time.Now()
		if err := l.store.Erase(eraseOff, EraseUnitSize); err != nil {
			err = eraseError(eraseOff, err)
			l.logger.LogAppend(0, target, err)
			return err
		}
		per := l.EntriesPerEraseUnit()
		l.inUse -= per
		l.oldest = l.ring.Add(l.oldest, per)
		l.metrics.RecordErase(per, time.Since(eraseStart))
		l.logger.LogEvict(per, l.oldest)
	}

	seq := l.highestSeq + 1
	binary.LittleEndian.PutUint32(l.buf[:slotHeaderSize], seq)
	if err := l.store.WriteAt(l.buf, off); err != nil {
		err = writeError(off, err)
		l.logger.LogAppend(seq, target, err)
		return err
	}

	l.newest = target
	l.highestSeq = seq
	l.inUse++
	l.logger.LogAppend(seq, target, nil)
	return nil
}
