package filesystem

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/livelink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseFS(t *testing.T, fsys types.FS, root string) {
	t.Helper()

	dir := filepath.Join(root, "node_modules", "widget")
	require.NoError(t, fsys.MkdirAll(dir, 0755))

	file := filepath.Join(dir, "package.json")
	content := []byte(`{"name":"widget"}`)
	require.NoError(t, fsys.WriteFile(file, content, 0644))

	info, err := fsys.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, "package.json", info.Name())
	assert.Equal(t, int64(len(content)), info.Size())

	got, err := fsys.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = fsys.ReadFile(dir)
	assert.Error(t, err, "reading a directory must fail")

	_, err = fsys.Stat(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOSFS(t *testing.T) {
	exerciseFS(t, NewOS(), t.TempDir())
}

func TestMemoryFS(t *testing.T) {
	exerciseFS(t, NewMemory(), "/work")
}
