package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"dircensus/internal/config"
	"dircensus/internal/filesystem"
	"dircensus/internal/report"
	"dircensus/pkg/models"
)

var (
	// ErrDirectoryNotFound is returned when the requested path does not exist
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrNotDirectory is returned when the requested path is not a directory
	ErrNotDirectory = errors.New("path is not a directory")
)

// ProgressCallback is called to report scan progress
type ProgressCallback func(phase string, current, total int, message string)

// Reporter enumerates files under a directory and writes a manifest report
type Reporter struct {
	config           *config.Config
	logger           *zap.Logger
	walker           *filesystem.Walker
	generator        *report.Generator
	results          *models.ScanResults
	progressCallback ProgressCallback
}

// NewReporter creates a new directory reporter
func NewReporter(cfg *config.Config, logger *zap.Logger) *Reporter {
	return &Reporter{
		config: cfg,
		logger: logger,
		results: &models.ScanResults{
			Stats: &models.ScanStatistics{},
		},
	}
}

// SetProgressCallback sets the progress callback function
func (r *Reporter) SetProgressCallback(cb ProgressCallback) {
	r.progressCallback = cb
}

// reportProgress calls the progress callback if set
func (r *Reporter) reportProgress(phase string, current, total int, message string) {
	if r.progressCallback != nil {
		r.progressCallback(phase, current, total, message)
	}
}

// Scan walks the directory and writes the manifest report.
// Per-file metadata failures are counted and skipped; only an invalid
// root directory or a report write failure aborts the run.
func (r *Reporter) Scan(path string) (*models.ScanResults, error) {
	path, err := r.validatePath(path)
	if err != nil {
		return nil, err
	}

	maxSize, err := r.config.MaxSizeBytes()
	if err != nil {
		return nil, fmt.Errorf("invalid max size %q: %w", r.config.MaxSize, err)
	}

	r.logger.Info("Starting scan",
		zap.String("path", path),
		zap.Bool("recursive", r.config.Recursive))

	r.results.StartTime = time.Now()
	r.results.ScanPath = path
	r.results.Recursive = r.config.Recursive

	r.walker = filesystem.NewWalker(r.config, r.logger)
	r.generator = report.NewGenerator(r.config, r.logger)

	// Count files first for progress totals
	r.reportProgress("counting", 0, 0, "Counting files...")
	totalFiles := r.countFiles(path, maxSize)
	r.reportProgress("counting", totalFiles, totalFiles, fmt.Sprintf("Found %d files", totalFiles))

	// Collect records
	if err := r.collectRecords(path, maxSize, totalFiles); err != nil {
		return nil, err
	}

	// Finalize results
	r.results.EndTime = time.Now()
	r.results.Duration = r.results.EndTime.Sub(r.results.StartTime)
	r.calculateStats()

	// Generate report
	reportPath, err := r.generator.Generate(r.results)
	if err != nil {
		r.logger.Error("Failed to generate report", zap.Error(err))
		return r.results, err
	}
	r.results.ReportPath = reportPath

	r.logger.Info("Scan completed",
		zap.Duration("duration", r.results.Duration),
		zap.Int("files", r.results.TotalFiles),
		zap.Int("dirs", r.results.TotalDirs),
		zap.Int("read_errors", r.results.Stats.ReadErrors))

	return r.results, nil
}

// validatePath checks that the path exists and is a directory
func (r *Reporter) validatePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrDirectoryNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}

	return abs, nil
}

// countFiles counts the files a collect pass would record
func (r *Reporter) countFiles(path string, maxSize int64) int {
	count := 0
	tempWalker := filesystem.NewWalker(r.config, r.logger)
	tempWalker.Walk(path, filesystem.Visitor{
		File: func(record *models.FileRecord) error {
			if r.shouldRecord(record, maxSize) {
				count++
			}
			return nil
		},
	})
	return count
}

// collectRecords walks the directory and accumulates file records
func (r *Reporter) collectRecords(path string, maxSize int64, totalFiles int) error {
	processed := 0

	return r.walker.Walk(path, filesystem.Visitor{
		File: func(record *models.FileRecord) error {
			if !r.shouldRecord(record, maxSize) {
				r.results.SkippedEntries++
				return nil
			}

			r.results.AddRecord(record)
			processed++
			if processed%100 == 0 || processed == totalFiles {
				r.reportProgress("scanning", processed, totalFiles, record.Path)
			}
			return nil
		},
		Dir: func(dirPath string) {
			r.results.TotalDirs++
		},
		Err: func(errPath string, err error) {
			r.results.AddReadError(errPath)
		},
	})
}

// shouldRecord applies the extension and size filters
func (r *Reporter) shouldRecord(record *models.FileRecord, maxSize int64) bool {
	if !r.config.ShouldInclude(record.Extension) {
		r.logger.Debug("Skipping file by extension", zap.String("path", record.Path))
		return false
	}
	if maxSize > 0 && record.Size > maxSize {
		r.logger.Debug("File too large, skipping",
			zap.String("path", record.Path),
			zap.Int64("size", record.Size))
		return false
	}
	return true
}

// calculateStats calculates final statistics
func (r *Reporter) calculateStats() {
	if r.results.TotalFiles > 0 {
		r.results.Stats.AverageFileSize = r.results.Stats.TotalSize / int64(r.results.TotalFiles)
	}

	duration := r.results.Duration.Seconds()
	if duration > 0 {
		r.results.Stats.FilesPerSecond = float64(r.results.TotalFiles) / duration
	}
}
