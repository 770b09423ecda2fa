package indexer

import (
	"context"
	"runtime"
	"time"

	"github.com/mvp-joe/fndoc/internal/docmeta"
	"golang.org/x/sync/errgroup"
)

// Scanner extracts many files concurrently. Each file is an independent
// pipeline run; results keep the order of the input paths.
type Scanner struct {
	extractor *Extractor
	workers   int
	progress  ProgressReporter
}

// NewScanner creates a scanner. workers <= 0 means runtime.NumCPU().
func NewScanner(extractor *Extractor, workers int, progress ProgressReporter) *Scanner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}
	return &Scanner{
		extractor: extractor,
		workers:   workers,
		progress:  progress,
	}
}

// Scan extracts every path and returns results in input order.
// The first failure cancels the remaining work and is returned.
func (s *Scanner) Scan(ctx context.Context, paths []string) ([]*docmeta.FileMetadata, error) {
	start := time.Now()
	results := make([]*docmeta.FileMetadata, len(paths))

	s.progress.OnScanStart(len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, path := range paths {
		g.Go(func() error {
			result, err := s.extractor.ExtractFile(gctx, path)
			if err != nil {
				return err
			}
			results[i] = result
			s.progress.OnFileProcessed(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &ScanStats{
		FilesProcessed: len(results),
		Duration:       time.Since(start),
	}
	for _, r := range results {
		stats.Functions += len(r.Functions)
		for _, fn := range r.Functions {
			stats.Annotations += len(fn.Annotations)
		}
	}
	s.progress.OnScanComplete(stats)

	return results, nil
}
