package blockstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFileCreatesErasedRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")

	store, err := OpenFile(path, 8192)
	require.NoError(t, err)
	defer store.Close()

	p := make([]byte, 32)
	require.NoError(t, store.ReadAt(p, 8192-32))
	for _, b := range p {
		assert.Equal(t, byte(0xFF), b)
	}
}

func TestOpenFileAlignment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")

	_, err := OpenFile(path, 1000)
	assert.ErrorIs(t, err, ErrUnaligned)

	_, err = OpenFile(path, 0)
	assert.ErrorIs(t, err, ErrUnaligned)
}

func TestOpenFileSizeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")

	store, err := OpenFile(path, 8192)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = OpenFile(path, 16384)
	assert.Error(t, err)
}

func TestFileStoreProgramSemantics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")

	store, err := OpenFile(path, 4096)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.WriteAt([]byte{0xF0}, 10))
	require.NoError(t, store.WriteAt([]byte{0x3C}, 10))

	p := make([]byte, 1)
	require.NoError(t, store.ReadAt(p, 10))
	assert.Equal(t, byte(0x30), p[0])
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")

	store, err := OpenFile(path, 8192)
	require.NoError(t, err)
	require.NoError(t, store.WriteAt([]byte("durable"), 4096))
	require.NoError(t, store.Erase(0, EraseUnitSize))
	require.NoError(t, store.Close())

	store, err = OpenFile(path, 8192)
	require.NoError(t, err)
	defer store.Close()

	p := make([]byte, 7)
	require.NoError(t, store.ReadAt(p, 4096))
	assert.Equal(t, "durable", string(p))

	require.NoError(t, store.ReadAt(p, 0))
	for _, b := range p {
		assert.Equal(t, byte(0xFF), b)
	}
}
