package flashlog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyCleanLog(t *testing.T) {
	store := newTestStore(t, 12288)
	log, err := Open(store, 12)
	require.NoError(t, err)
	defer log.Close()

	require.NoError(t, log.Verify()) // empty

	appendN(t, log, 10)
	require.NoError(t, log.Verify())

	appendN(t, log, 600) // wrapped, post-eviction
	require.NoError(t, log.Verify())
}

func TestVerifyDetectsStrayEntry(t *testing.T) {
	store := newTestStore(t, 8192)
	log, err := Open(store, 12)
	require.NoError(t, err)
	defer log.Close()

	appendN(t, log, 5)

	// Program a sequence header into an unused slot behind the log's back,
	// as a torn write would. The count no longer matches the cursor state.
	off := log.slotOffset(100)
	require.NoError(t, store.WriteAt([]byte{0x09, 0x00, 0x00, 0x00}, off))

	var arcErr *ArcViolationError
	require.ErrorAs(t, log.Verify(), &arcErr)
}

func TestVerifyDetectsSequenceDisorder(t *testing.T) {
	store := newTestStore(t, 8192)
	log, err := Open(store, 12)
	require.NoError(t, err)
	defer log.Close()

	appendN(t, log, 5)

	// NOR programming can only clear bits: zeroing a mid-arc header drops
	// its sequence below its predecessor's.
	off := log.slotOffset(2)
	require.NoError(t, store.WriteAt([]byte{0x00, 0x00, 0x00, 0x00}, off))

	err = log.Verify()
	var arcErr *ArcViolationError
	require.ErrorAs(t, err, &arcErr)
	assert.Equal(t, 2, arcErr.Slot)
	assert.Contains(t, arcErr.Reason, "strictly increasing")
}

func TestVerifyDetectsReadFailure(t *testing.T) {
	store := newTestStore(t, 8192)
	log, err := Open(store, 12)
	require.NoError(t, err)
	defer log.Close()

	appendN(t, log, 3)
	cause := errors.New("bus fault")
	store.FailReads(cause)

	err = log.Verify()
	assert.ErrorIs(t, err, ErrReadFailure)
	assert.ErrorIs(t, err, cause)
}
