package flashlog

// Navigation moves the cursor along the oldest-to-newest arc. These are the
// only transitions; there is no seek by sequence number or slot index.
// All four return ErrInvalidCursor on an empty log.

// GotoOldest positions the cursor at the oldest entry.
func (l *Log) GotoOldest() error {
	if l.buf == nil {
		return ErrNotInitialized
	}
	if l.inUse == 0 {
		return ErrInvalidCursor
	}
	l.current = l.oldest
	return nil
}

// GotoNewest positions the cursor at the newest entry.
func (l *Log) GotoNewest() error {
	if l.buf == nil {
		return ErrNotInitialized
	}
	if l.inUse == 0 {
		return ErrInvalidCursor
	}
	l.current = l.newest
	return nil
}

// GotoNext advances the cursor one entry toward the newest.
// Returns ErrInvalidCursor at the newest entry.
func (l *Log) GotoNext() error {
	if l.buf == nil {
		return ErrNotInitialized
	}
	if l.inUse == 0 || l.current == l.newest {
		return ErrInvalidCursor
	}
	l.current = l.ring.Next(l.current)
	return nil
}

// GotoPrev steps the cursor one entry toward the oldest.
// Returns ErrInvalidCursor at the oldest entry.
func (l *Log) GotoPrev() error {
	if l.buf == nil {
		return ErrNotInitialized
	}
	if l.inUse == 0 || l.current == l.oldest {
		return ErrInvalidCursor
	}
	l.current = l.ring.Prev(l.current)
	return nil
}
