package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"

	"github.com/mvp-joe/fndoc/internal/indexer"
	"github.com/mvp-joe/fndoc/internal/indexer/parsers"
	"github.com/mvp-joe/fndoc/internal/watcher"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-extract source files as they change",
	Long: `Watch monitors a directory (default: the current one) and re-extracts
every supported source file that changes. Each result is printed as one line
of JSON. Failures are logged and watching continues.

Press Ctrl+C to stop.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		rootDir := "."
		if len(args) == 1 {
			rootDir = args[0]
		}

		ctx, cancel := signalContext()
		defer cancel()

		settings, err := loadSettings(rootDir, cmd)
		if err != nil {
			return err
		}
		return runWatch(ctx, settings, rootDir, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// runWatch blocks until ctx is cancelled.
func runWatch(ctx context.Context, s *settings, rootDir string, out io.Writer) error {
	cache, err := indexer.NewResultCache(s.config.Scan.CacheSize)
	if err != nil {
		return err
	}
	defer cache.Close()

	extractor := indexer.NewExtractor(s.config.ToAnnotationConfig(), indexer.WithCache(cache))

	fw, err := watcher.NewFileWatcher([]string{rootDir}, watcher.Options{
		Extensions: parsers.NewRegistry().Extensions(),
		Debounce:   s.config.Debounce(),
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", rootDir, err)
	}
	defer fw.Stop()

	if err := fw.Start(ctx, func(files []string) {
		handleChanges(ctx, extractor, files, out)
	}); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	log.Printf("Watching %s for changes...", rootDir)
	<-ctx.Done()
	log.Println("Watch mode stopped")
	return nil
}

// handleChanges re-extracts changed files and writes one JSON line per file.
// Removed files are skipped; failures are logged.
func handleChanges(ctx context.Context, extractor *indexer.Extractor, files []string, out io.Writer) {
	encoder := json.NewEncoder(out)
	for _, path := range files {
		if ctx.Err() != nil {
			return
		}

		result, err := extractor.ExtractFile(ctx, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			log.Printf("Warning: %v", err)
			continue
		}

		if err := encoder.Encode(result); err != nil {
			log.Printf("Warning: failed to write result for %s: %v", path, err)
		}
	}
}
