package flashlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigationEmptyLog(t *testing.T) {
	store := newTestStore(t, 8192)
	log, err := Open(store, 12)
	require.NoError(t, err)
	defer log.Close()

	// Every navigation call and read fails on an empty log.
	assert.ErrorIs(t, log.GotoOldest(), ErrInvalidCursor)
	assert.ErrorIs(t, log.GotoNewest(), ErrInvalidCursor)
	assert.ErrorIs(t, log.GotoNext(), ErrInvalidCursor)
	assert.ErrorIs(t, log.GotoPrev(), ErrInvalidCursor)
	assert.ErrorIs(t, log.Read(), ErrInvalidCursor)
}

func TestNavigationSingleEntry(t *testing.T) {
	store := newTestStore(t, 8192)
	log, err := Open(store, 12)
	require.NoError(t, err)
	defer log.Close()

	appendN(t, log, 1)

	require.NoError(t, log.GotoOldest())
	assert.ErrorIs(t, log.GotoPrev(), ErrInvalidCursor)
	require.NoError(t, log.GotoNewest())
	assert.ErrorIs(t, log.GotoNext(), ErrInvalidCursor)
	require.NoError(t, log.Read())
}

func TestNavigationBounds(t *testing.T) {
	store := newTestStore(t, 8192)
	log, err := Open(store, 12)
	require.NoError(t, err)
	defer log.Close()

	appendN(t, log, 5)

	// Forward walk visits every entry exactly once.
	require.NoError(t, log.GotoOldest())
	steps := 1
	for log.GotoNext() == nil {
		steps++
	}
	assert.Equal(t, 5, steps)
	assert.ErrorIs(t, log.GotoNext(), ErrInvalidCursor)

	// Backward walk too.
	require.NoError(t, log.GotoNewest())
	steps = 1
	for log.GotoPrev() == nil {
		steps++
	}
	assert.Equal(t, 5, steps)
	assert.ErrorIs(t, log.GotoPrev(), ErrInvalidCursor)
}

func TestNavigationAcrossWrap(t *testing.T) {
	// Force a wrapped arc, then walk it both ways.
	store := newTestStore(t, 12288)
	log, err := Open(store, 12)
	require.NoError(t, err)
	defer log.Close()

	appendN(t, log, 512+100) // evicts once, arc wraps slot 0

	require.NoError(t, log.GotoOldest())
	count := 1
	var prev uint32
	for {
		require.NoError(t, log.Read())
		assert.Greater(t, log.Sequence(), prev)
		prev = log.Sequence()
		if log.GotoNext() != nil {
			break
		}
		count++
	}
	assert.Equal(t, log.Len(), count)
}

func TestReadAfterEvictionInvalidatesCursor(t *testing.T) {
	store := newTestStore(t, 12288)
	log, err := Open(store, 12)
	require.NoError(t, err)
	defer log.Close()

	appendN(t, log, 512)

	// Park the cursor a few entries into the oldest erase unit.
	require.NoError(t, log.GotoOldest())
	for i := 0; i < 5; i++ {
		require.NoError(t, log.GotoNext())
	}
	require.NoError(t, log.Read())

	// Eviction removes the slot the cursor is parked on; the next read must
	// fail as out-of-arc rather than return stale bytes.
	appendString(t, log, "evictor.....")
	assert.ErrorIs(t, log.Read(), ErrInvalidCursor)

	// Re-anchoring recovers.
	require.NoError(t, log.GotoNewest())
	require.NoError(t, log.Read())
	assert.Equal(t, "evictor.....", string(log.Payload()))
}
