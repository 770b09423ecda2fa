package indexer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for FileDiscovery:
// - Include patterns select files, including files in the root for "**/" globs
// - Ignore patterns exclude files and whole directories
// - .git and .fndoc are always skipped
// - Results are in lexical order
// - Invalid patterns are rejected

func TestFileDiscovery_Fixture(t *testing.T) {
	t.Parallel()

	root := "../../testdata/project"
	fd, err := NewFileDiscovery(root, []string{"**/*.ts", "**/*.py"}, []string{"node_modules/**"})
	require.NoError(t, err)

	files, err := fd.DiscoverFiles()
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "src/index.ts"),
		filepath.Join(root, "src/lib/helpers.py"),
		filepath.Join(root, "src/lib/util.ts"),
	}, files)
}

func TestFileDiscovery_RootFilesAndAlwaysIgnored(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, rel := range []string{"main.go", ".git/hooks.go", ".fndoc/cache.go", "pkg/a.go", "pkg/a_test.go"} {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("package x\n"), 0644))
	}

	fd, err := NewFileDiscovery(root, []string{"**/*.go"}, []string{"**/*_test.go"})
	require.NoError(t, err)

	files, err := fd.DiscoverFiles()
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "main.go"),
		filepath.Join(root, "pkg/a.go"),
	}, files)
}

func TestNewFileDiscovery_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewFileDiscovery(".", []string{"[unclosed"}, nil)
	assert.Error(t, err)
}
