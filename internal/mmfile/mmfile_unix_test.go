//go:build unix

package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMapsFileContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.bin")
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x42}
	require.NoError(t, os.WriteFile(path, want, 0o644))

	m, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, want, m.Bytes())

	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "double close is a no-op")
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	m, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, m.Bytes())
	require.NoError(t, m.Close())
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.bin"))
	require.Error(t, err)
}
