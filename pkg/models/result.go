package models

import "time"

// ScanResults contains the complete results of one directory scan
type ScanResults struct {
	// Summary
	StartTime      time.Time     `json:"start_time"`
	EndTime        time.Time     `json:"end_time"`
	Duration       time.Duration `json:"duration"`
	ScanPath       string        `json:"scan_path"`
	Recursive      bool          `json:"recursive"`
	TotalFiles     int           `json:"total_files"`
	TotalDirs      int           `json:"total_dirs"`
	SkippedEntries int           `json:"skipped_entries"`

	// Per-file records, in walk order
	Records []*FileRecord `json:"records"`

	// Statistics
	Stats *ScanStatistics `json:"statistics"`

	// Report path
	ReportPath string `json:"report_path,omitempty"`
}

// ScanStatistics contains detailed scan statistics
type ScanStatistics struct {
	// File statistics
	TotalSize       int64  `json:"total_size"`
	LargestFile     string `json:"largest_file,omitempty"`
	LargestFileSize int64  `json:"largest_file_size"`
	AverageFileSize int64  `json:"average_file_size"`

	// Counts by attribute
	HiddenFiles int `json:"hidden_files"`
	Symlinks    int `json:"symlinks"`

	// Errors
	ReadErrors int      `json:"read_errors"`
	ErrorPaths []string `json:"error_paths,omitempty"`

	// Performance
	FilesPerSecond float64 `json:"files_per_second"`
}

// AddRecord appends a record to the results and updates the statistics
func (r *ScanResults) AddRecord(rec *FileRecord) {
	r.Records = append(r.Records, rec)
	r.TotalFiles++

	if r.Stats == nil {
		r.Stats = &ScanStatistics{}
	}

	r.Stats.TotalSize += rec.Size
	if rec.Size > r.Stats.LargestFileSize {
		r.Stats.LargestFileSize = rec.Size
		r.Stats.LargestFile = rec.Path
	}
	if rec.IsHidden {
		r.Stats.HiddenFiles++
	}
	if rec.IsSymlink {
		r.Stats.Symlinks++
	}
}

// AddReadError records a per-file access failure
func (r *ScanResults) AddReadError(path string) {
	if r.Stats == nil {
		r.Stats = &ScanStatistics{}
	}
	r.Stats.ReadErrors++
	r.Stats.ErrorPaths = append(r.Stats.ErrorPaths, path)
}
