package indexer

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mvp-joe/fndoc/internal/docmeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Scanner:
// - Results keep the order of the input paths regardless of worker count
// - Stats count files, functions and annotations
// - Progress callbacks fire once per file
// - Any file failure fails the scan with that failure
// - An empty path list completes with no results

type recordingProgress struct {
	NoOpProgressReporter
	mu        sync.Mutex
	started   int
	processed []string
	stats     *ScanStats
}

func (r *recordingProgress) OnScanStart(total int) {
	r.started = total
}

func (r *recordingProgress) OnFileProcessed(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed = append(r.processed, path)
}

func (r *recordingProgress) OnScanComplete(stats *ScanStats) {
	r.stats = stats
}

func writeScanFiles(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		name := string(rune('a'+i)) + ".ts"
		src := "/** @param x value */\nfunction fn" + string(rune('a'+i)) + "(x) {}\n"
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(src), 0644))
		paths = append(paths, path)
	}
	return paths
}

func TestScanner_PreservesOrder(t *testing.T) {
	t.Parallel()

	paths := writeScanFiles(t, 8)
	progress := &recordingProgress{}
	scanner := NewScanner(NewExtractor(docmeta.DefaultAnnotationConfig()), 3, progress)

	results, err := scanner.Scan(context.Background(), paths)
	require.NoError(t, err)

	require.Len(t, results, len(paths))
	for i, r := range results {
		assert.Equal(t, paths[i], r.Path)
		assert.Equal(t, "fn"+string(rune('a'+i)), r.Functions[0].Name)
	}

	assert.Equal(t, 8, progress.started)
	assert.ElementsMatch(t, paths, progress.processed)
	require.NotNil(t, progress.stats)
	assert.Equal(t, 8, progress.stats.FilesProcessed)
	assert.Equal(t, 8, progress.stats.Functions)
	assert.Equal(t, 8, progress.stats.Annotations)
}

func TestScanner_FailureFailsScan(t *testing.T) {
	t.Parallel()

	paths := writeScanFiles(t, 2)
	paths = append(paths, filepath.Join(t.TempDir(), "missing.ts"))

	scanner := NewScanner(NewExtractor(docmeta.DefaultAnnotationConfig()), 2, nil)
	results, err := scanner.Scan(context.Background(), paths)

	assert.Nil(t, results)
	assert.ErrorIs(t, err, docmeta.ErrIO)
}

func TestScanner_Empty(t *testing.T) {
	t.Parallel()

	scanner := NewScanner(NewExtractor(docmeta.DefaultAnnotationConfig()), 0, nil)
	results, err := scanner.Scan(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, results)
}
