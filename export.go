package flashlog

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Snapshot stream format, little-endian:
//
//	magic "FLSX" | version uint16 | compression uint8 | reserved uint8
//	payloadSize uint32 | count uint32
//	body: count x (seq uint32 | payload), then CRC32/IEEE of those bytes
//
// The header is stored uncompressed; the body (entries plus trailing
// checksum) passes through the selected compressor as one stream, so the
// decoder never has to find a trailer behind a buffered decompressor.
//
// Snapshots exist for backup and fleet diagnostics: pull a device's log over
// a debug channel, replay and inspect it on a workstation.

// Compression selects the snapshot body codec. The choice is recorded in
// the snapshot header, so readers self-configure.
type Compression uint8

const (
	// CompressionNone stores the body uncompressed.
	CompressionNone Compression = iota
	// CompressionZstd compresses the body with zstd.
	CompressionZstd
	// CompressionLZ4 compresses the body with lz4.
	CompressionLZ4
)

var snapshotMagic = [4]byte{'F', 'L', 'S', 'X'}

const (
	snapshotVersion    = uint16(1)
	snapshotHeaderSize = 16

	// maxSnapshotBytes bounds what ReadSnapshot will allocate from an
	// untrusted header.
	maxSnapshotBytes = 1 << 30
)

// Entry is one decoded snapshot entry.
type Entry struct {
	Sequence uint32
	Payload  []byte
}

// Snapshot is a fully decoded snapshot stream.
type Snapshot struct {
	PayloadSize int
	Entries     []Entry
}

// Export streams every stored entry, oldest to newest, to w using the
// compression configured at Open (WithCompression). The cursor and the
// entry buffer are untouched.
func (l *Log) Export(w io.Writer) error {
	if l.buf == nil {
		return ErrNotInitialized
	}

	hdr := make([]byte, snapshotHeaderSize)
	copy(hdr[0:4], snapshotMagic[:])
	binary.LittleEndian.PutUint16(hdr[4:6], snapshotVersion)
	hdr[6] = byte(l.compression)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(l.payloadSize)) //nolint:gosec
	binary.LittleEndian.PutUint32(hdr[12:16], uint32(l.inUse))     //nolint:gosec
	if _, err := w.Write(hdr); err != nil {
		return fmt.Errorf("flashlog: failed to write snapshot header: %w", err)
	}

	body, closeBody, err := compressBody(w, l.compression)
	if err != nil {
		return err
	}

	crc := crc32.NewIEEE()
	scratch := make([]byte, slotHeaderSize+l.payloadSize)
	for k := 0; k < l.inUse; k++ {
		slot := l.ring.Add(l.oldest, k)
		off := l.slotOffset(slot)
		if err := l.store.ReadAt(scratch, off); err != nil {
			_ = closeBody()
			return readError(off, err)
		}
		// A slot is already seq|payload on flash; the snapshot entry is the
		// same bytes.
		if _, err := body.Write(scratch); err != nil {
			_ = closeBody()
			return fmt.Errorf("flashlog: failed to write snapshot entry: %w", err)
		}
		_, _ = crc.Write(scratch)
	}

	var sum [4]byte
	binary.LittleEndian.PutUint32(sum[:], crc.Sum32())
	if _, err := body.Write(sum[:]); err != nil {
		_ = closeBody()
		return fmt.Errorf("flashlog: failed to write snapshot checksum: %w", err)
	}
	return closeBody()
}

// ReadSnapshot decodes a snapshot stream produced by Export, verifying its
// checksum.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	hdr := make([]byte, snapshotHeaderSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, &SnapshotFormatError{Reason: "short header", cause: err}
	}
	if [4]byte(hdr[0:4]) != snapshotMagic {
		return nil, &SnapshotFormatError{Reason: "bad magic"}
	}
	if v := binary.LittleEndian.Uint16(hdr[4:6]); v != snapshotVersion {
		return nil, &SnapshotFormatError{Reason: fmt.Sprintf("unsupported version %d", v)}
	}
	compression := Compression(hdr[6])
	payloadSize := int(binary.LittleEndian.Uint32(hdr[8:12]))
	count := int(binary.LittleEndian.Uint32(hdr[12:16]))

	entrySize := int64(payloadSize) + slotHeaderSize
	if payloadSize <= 0 || count < 0 || int64(count)*entrySize > maxSnapshotBytes {
		return nil, fmt.Errorf("%w: snapshot declares %d entries of %d bytes",
			ErrOutOfMemory, count, entrySize)
	}

	body, err := decompressBody(r, compression)
	if err != nil {
		return nil, err
	}

	crc := crc32.NewIEEE()
	entries := make([]Entry, 0, count)
	buf := make([]byte, entrySize)
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(body, buf); err != nil {
			return nil, &SnapshotFormatError{Reason: fmt.Sprintf("truncated at entry %d", i), cause: err}
		}
		_, _ = crc.Write(buf)
		payload := make([]byte, payloadSize)
		copy(payload, buf[slotHeaderSize:])
		entries = append(entries, Entry{
			Sequence: binary.LittleEndian.Uint32(buf[:slotHeaderSize]),
			Payload:  payload,
		})
	}

	var sum [4]byte
	if _, err := io.ReadFull(body, sum[:]); err != nil {
		return nil, &SnapshotFormatError{Reason: "missing checksum", cause: err}
	}
	if got := binary.LittleEndian.Uint32(sum[:]); got != crc.Sum32() {
		return nil, &SnapshotFormatError{
			Reason: fmt.Sprintf("checksum mismatch: stored 0x%08x, computed 0x%08x", got, crc.Sum32()),
		}
	}

	return &Snapshot{PayloadSize: payloadSize, Entries: entries}, nil
}

// Restore appends every entry of a snapshot stream to the log, oldest
// first. Sequence numbers are region-local, so the stored ones are
// discarded and fresh ones assigned; eviction applies as for any append
// when the snapshot exceeds the ring.
//
// The snapshot's payload size must match the log's.
func (l *Log) Restore(r io.Reader) error {
	if l.buf == nil {
		return ErrNotInitialized
	}
	snap, err := ReadSnapshot(r)
	if err != nil {
		return err
	}
	if snap.PayloadSize != l.payloadSize {
		return &SnapshotFormatError{
			Reason: fmt.Sprintf("payload size %d does not match region's %d", snap.PayloadSize, l.payloadSize),
		}
	}
	for _, e := range snap.Entries {
		copy(l.Payload(), e.Payload)
		if err := l.Append(); err != nil {
			return err
		}
	}
	return nil
}

// compressBody wraps w according to the compression mode. The returned
// close function flushes the compressor; it does not close w.
func compressBody(w io.Writer, c Compression) (io.Writer, func() error, error) {
	switch c {
	case CompressionNone:
		return w, func() error { return nil }, nil
	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, fmt.Errorf("flashlog: failed to create zstd writer: %w", err)
		}
		return zw, zw.Close, nil
	case CompressionLZ4:
		lw := lz4.NewWriter(w)
		return lw, lw.Close, nil
	default:
		return nil, nil, &SnapshotFormatError{Reason: fmt.Sprintf("unknown compression %d", c)}
	}
}

func decompressBody(r io.Reader, c Compression) (io.Reader, error) {
	switch c {
	case CompressionNone:
		return r, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("flashlog: failed to create zstd reader: %w", err)
		}
		return zr.IOReadCloser(), nil
	case CompressionLZ4:
		return lz4.NewReader(r), nil
	default:
		return nil, &SnapshotFormatError{Reason: fmt.Sprintf("unknown compression %d", c)}
	}
}
