package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/livelink/pkg/types"
	"github.com/stretchr/testify/require"
)

// WriteManifest installs a manifest for package id under cwd/node_modules
func WriteManifest(t *testing.T, fs types.FS, cwd, id, manifestFile, content string) string {
	t.Helper()

	dir := filepath.Join(cwd, "node_modules", id)
	require.NoError(t, fs.MkdirAll(dir, 0755))

	path := filepath.Join(dir, manifestFile)
	require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
	return path
}
