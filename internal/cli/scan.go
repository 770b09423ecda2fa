package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/mvp-joe/fndoc/internal/docmeta"
	"github.com/mvp-joe/fndoc/internal/indexer"
	"github.com/mvp-joe/fndoc/internal/storage"
	"github.com/spf13/cobra"
)

var (
	quietFlag  bool
	sqliteFlag string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Extract annotations from every source file in a directory",
	Long: `Scan discovers source files under a directory (default: the current one),
extracts them concurrently and prints the results as a JSON array with one
entry per file, in path order.

File selection follows paths.include and paths.ignore from .fndoc/config.yml.

Examples:
  # Scan the current directory
  fndoc scan

  # Scan a project and also store the results in SQLite
  fndoc scan ./src --sqlite annotations.db

  # Scan without the progress bar
  fndoc scan --quiet
`,
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

		progress := NewCLIProgressReporter(quietFlag, cmd.ErrOrStderr())
		return runScan(ctx, settings, rootDir, sqliteFlag, progress, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress output")
	scanCmd.Flags().StringVar(&sqliteFlag, "sqlite", "", "Also write results to this SQLite database")
}

// runScan discovers, extracts and reports every supported file under rootDir.
func runScan(ctx context.Context, s *settings, rootDir, sqlitePath string, progress indexer.ProgressReporter, out io.Writer) error {
	if info, err := os.Stat(rootDir); err != nil {
		return docmeta.NewIOError(rootDir, err)
	} else if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", rootDir)
	}

	progress.OnDiscoveryStart()
	files, err := discoverFiles(s, rootDir)
	if err != nil {
		return err
	}
	progress.OnDiscoveryComplete(len(files))

	cache, err := indexer.NewResultCache(s.config.Scan.CacheSize)
	if err != nil {
		return err
	}
	defer cache.Close()

	extractor := indexer.NewExtractor(s.config.ToAnnotationConfig(), indexer.WithCache(cache))
	results, err := indexer.NewScanner(extractor, s.config.Scan.Workers, progress).Scan(ctx, files)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if sqlitePath != "" {
		runID, err := exportRun(ctx, sqlitePath, rootDir, results)
		if err != nil {
			return err
		}
		if s.verbose {
			log.Printf("Stored run %s in %s", runID, sqlitePath)
		}
	}

	return writeJSON(out, results)
}

// discoverFiles returns the supported files matching the configured patterns.
func discoverFiles(s *settings, rootDir string) ([]string, error) {
	discovery, err := indexer.NewFileDiscovery(rootDir, s.config.Paths.Include, s.config.Paths.Ignore)
	if err != nil {
		return nil, fmt.Errorf("invalid path pattern: %w", err)
	}

	candidates, err := discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}

	extractor := indexer.NewExtractor(s.config.ToAnnotationConfig())
	files := make([]string, 0, len(candidates))
	for _, path := range candidates {
		if extractor.Supports(path) {
			files = append(files, path)
		}
	}
	return files, nil
}

// exportRun writes results to the SQLite database at path.
func exportRun(ctx context.Context, path, rootDir string, results []*docmeta.FileMetadata) (string, error) {
	db, err := storage.Open(path)
	if err != nil {
		return "", err
	}
	defer db.Close()

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		absRoot = rootDir
	}

	runID, err := storage.NewWriter(db).WriteRun(ctx, absRoot, results)
	if err != nil {
		return "", fmt.Errorf("failed to export results: %w", err)
	}
	return runID, nil
}
