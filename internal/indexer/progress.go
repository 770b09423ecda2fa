package indexer

import "time"

// ProgressReporter provides callbacks for reporting scan progress.
// OnFileProcessed may be called from several goroutines at once.
type ProgressReporter interface {
	// OnDiscoveryStart is called when file discovery begins.
	OnDiscoveryStart()

	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(files int)

	// OnScanStart is called before files are extracted.
	OnScanStart(totalFiles int)

	// OnFileProcessed is called after each file is extracted.
	OnFileProcessed(filePath string)

	// OnScanComplete is called when every file has been extracted.
	OnScanComplete(stats *ScanStats)
}

// ScanStats summarizes a completed scan.
type ScanStats struct {
	FilesProcessed int
	Functions      int
	Annotations    int
	Duration       time.Duration
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()               {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(files int)   {}
func (n *NoOpProgressReporter) OnScanStart(totalFiles int)      {}
func (n *NoOpProgressReporter) OnFileProcessed(filePath string) {}
func (n *NoOpProgressReporter) OnScanComplete(stats *ScanStats) {}
