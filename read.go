package flashlog

import "time"

// Read copies the entry at the current cursor position into the buffer
// exposed by Payload. The cursor does not move.
//
// Returns ErrInvalidCursor when the log is empty or the cursor no longer
// lies on the oldest-to-newest arc (eviction may pull the arc out from
// under a cursor parked on old entries).
func (l *Log) Read() error {
	start := time.Now()
	err := l.read()
	l.metrics.RecordRead(time.Since(start), err)
	return err
}

func (l *Log) read() error {
	if l.buf == nil {
		return ErrNotInitialized
	}
	if l.inUse == 0 || !l.ring.InArc(l.current, l.oldest, l.inUse) {
		return ErrInvalidCursor
	}
	off := l.slotOffset(l.current)
	if err := l.store.ReadAt(l.buf, off); err != nil {
		return readError(off, err)
	}
	return nil
}
