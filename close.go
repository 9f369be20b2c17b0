package flashlog

// Close releases the entry buffer. Idempotent. The Block Store is owned by
// the caller and is not closed here.
//
// After Close every operation returns ErrNotInitialized, and slices
// previously returned by Payload must not be retained.
func (l *Log) Close() error {
	l.buf = nil
	return nil
}
