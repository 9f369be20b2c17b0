package flashlog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportRoundTrip(t *testing.T) {
	compressions := map[string]Compression{
		"none": CompressionNone,
		"zstd": CompressionZstd,
		"lz4":  CompressionLZ4,
	}

	for name, c := range compressions {
		t.Run(name, func(t *testing.T) {
			store := newTestStore(t, 8192)
			log, err := Open(store, 12, WithCompression(c))
			require.NoError(t, err)
			defer log.Close()

			appendN(t, log, 20)
			want := collectEntries(t, log)

			var buf bytes.Buffer
			require.NoError(t, log.Export(&buf))

			snap, err := ReadSnapshot(&buf)
			require.NoError(t, err)
			assert.Equal(t, 12, snap.PayloadSize)
			assert.Equal(t, want, snap.Entries)
		})
	}
}

func TestExportEmptyLog(t *testing.T) {
	store := newTestStore(t, 8192)
	log, err := Open(store, 12)
	require.NoError(t, err)
	defer log.Close()

	var buf bytes.Buffer
	require.NoError(t, log.Export(&buf))

	snap, err := ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.Empty(t, snap.Entries)
}

func TestExportWrappedArc(t *testing.T) {
	store := newTestStore(t, 12288)
	log, err := Open(store, 12)
	require.NoError(t, err)
	defer log.Close()

	appendN(t, log, 512+50)
	want := collectEntries(t, log)

	var buf bytes.Buffer
	require.NoError(t, log.Export(&buf))

	snap, err := ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, snap.Entries)
}

func TestReadSnapshotDetectsCorruption(t *testing.T) {
	store := newTestStore(t, 8192)
	log, err := Open(store, 12)
	require.NoError(t, err)
	defer log.Close()

	appendN(t, log, 5)

	var buf bytes.Buffer
	require.NoError(t, log.Export(&buf))

	// Flip a payload byte past the header.
	raw := buf.Bytes()
	raw[snapshotHeaderSize+10] ^= 0x01

	_, err = ReadSnapshot(bytes.NewReader(raw))
	var fmtErr *SnapshotFormatError
	require.ErrorAs(t, err, &fmtErr)
	assert.Contains(t, fmtErr.Reason, "checksum mismatch")
}

func TestReadSnapshotRejectsBadHeader(t *testing.T) {
	_, err := ReadSnapshot(bytes.NewReader([]byte("not a snapshot..")))
	var fmtErr *SnapshotFormatError
	require.ErrorAs(t, err, &fmtErr)

	// A header declaring an absurd entry count must be refused before any
	// allocation happens.
	hdr := make([]byte, snapshotHeaderSize)
	copy(hdr, snapshotMagic[:])
	hdr[4] = 1    // version
	hdr[8] = 0xFC // payload size 252
	// count = 0x7FFFFFFF entries
	hdr[12], hdr[13], hdr[14], hdr[15] = 0xFF, 0xFF, 0xFF, 0x7F
	_, err = ReadSnapshot(bytes.NewReader(hdr))
	require.ErrorIs(t, err, ErrOutOfMemory)
}

func TestRestore(t *testing.T) {
	src := newTestStore(t, 8192)
	log, err := Open(src, 12, WithCompression(CompressionZstd))
	require.NoError(t, err)
	appendN(t, log, 10)
	want := collectEntries(t, log)

	var buf bytes.Buffer
	require.NoError(t, log.Export(&buf))
	log.Close()

	dst := newTestStore(t, 12288)
	restored, err := Open(dst, 12)
	require.NoError(t, err)
	defer restored.Close()

	require.NoError(t, restored.Restore(&buf))
	require.Equal(t, 10, restored.Len())

	got := collectEntries(t, restored)
	for i := range got {
		// Fresh, region-local sequence numbers; identical payloads.
		assert.Equal(t, uint32(i+1), got[i].Sequence)
		assert.Equal(t, want[i].Payload, got[i].Payload)
	}
	require.NoError(t, restored.Verify())
}

func TestRestoreRejectsPayloadSizeMismatch(t *testing.T) {
	src := newTestStore(t, 8192)
	log, err := Open(src, 12)
	require.NoError(t, err)
	appendN(t, log, 3)

	var buf bytes.Buffer
	require.NoError(t, log.Export(&buf))
	log.Close()

	dst := newTestStore(t, 8192)
	other, err := Open(dst, 28)
	require.NoError(t, err)
	defer other.Close()

	err = other.Restore(&buf)
	var fmtErr *SnapshotFormatError
	require.ErrorAs(t, err, &fmtErr)
	assert.Contains(t, fmtErr.Reason, "payload size")
}
