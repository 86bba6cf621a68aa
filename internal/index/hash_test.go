package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHash_Deterministic(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("hello"), 0o644))

	ha, err := ComputeHash(a)
	require.NoError(t, err)
	hb, err := ComputeHash(b)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.Equal(t, HashBytes([]byte("hello")), ha)
	assert.Len(t, ha, 64)
}

func TestComputeHash_SingleByteChange(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(p, []byte("hello"), 0o644))
	before, err := ComputeHash(p)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(p, []byte("hellp"), 0o644))
	after, err := ComputeHash(p)
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestComputeHash_MissingFile(t *testing.T) {
	_, err := ComputeHash(filepath.Join(t.TempDir(), "nope"))
	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
