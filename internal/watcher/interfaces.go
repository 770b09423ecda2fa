package watcher

import (
	"context"
	"time"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 300 * time.Millisecond

// FileWatcher monitors source files for changes with debouncing.
type FileWatcher interface {
	// Start begins watching source directories, calling callback with debounced
	// file changes in lexical order.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the file watcher and cleans up resources. Safe to call more than once.
	Stop() error
}

// Options configures a FileWatcher.
type Options struct {
	// Extensions to monitor (e.g., []string{".go", ".ts"}). Empty means every file.
	Extensions []string

	// Debounce is the quiet period before the callback fires.
	Debounce time.Duration

	// IgnoreDirs are directory base names that are never watched.
	IgnoreDirs []string
}
