package core

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"go.uber.org/zap"

	"dircensus/internal/config"
)

// testConfig returns a config pointing the report at a path outside the
// scanned directory so report files never show up as scan records
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Format:        "csv",
		OutputFile:    filepath.Join(t.TempDir(), "contents.csv"),
		IncludeHidden: true,
	}
}

// newFixtureTree builds the nested fixture used by the scan tests
func newFixtureTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	nested := filepath.Join(root, "sub", "subsub")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create test directory: %v", err)
	}

	files := map[string]string{
		filepath.Join(root, "top_a.txt"):         "aaaa",
		filepath.Join(root, "top_b.log"):         "bb",
		filepath.Join(root, "sub", "mid.txt"):    "cccccc",
		filepath.Join(nested, "deep.mp4"):        "dddddddd",
		filepath.Join(root, `we,ird "name".txt`): "comma and quote",
		filepath.Join(root, "no_extension_file"): "x",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	return root
}

// readReport parses a CSV report back into rows
func readReport(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open report: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse report: %v", err)
	}
	return rows
}

func TestScanNonRecursive(t *testing.T) {
	root := newFixtureTree(t)
	cfg := testConfig(t)

	reporter := NewReporter(cfg, zap.NewNop())
	results, err := reporter.Scan(root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	// Top-level files only, nothing from subdirectories
	if results.TotalFiles != 4 {
		t.Errorf("Scan() TotalFiles = %d, want 4", results.TotalFiles)
	}

	rows := readReport(t, results.ReportPath)
	if len(rows) != 5 { // header + 4 data rows
		t.Fatalf("Report rows = %d, want 5", len(rows))
	}
	for _, row := range rows[1:] {
		if filepath.Dir(row[1]) != root {
			t.Errorf("Report contains row from subdirectory: %q", row[1])
		}
	}
}

func TestScanRecursive(t *testing.T) {
	root := newFixtureTree(t)
	cfg := testConfig(t)
	cfg.Recursive = true

	reporter := NewReporter(cfg, zap.NewNop())
	results, err := reporter.Scan(root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if results.TotalFiles != 6 {
		t.Errorf("Scan() TotalFiles = %d, want 6", results.TotalFiles)
	}
	// root, sub, subsub
	if results.TotalDirs != 3 {
		t.Errorf("Scan() TotalDirs = %d, want 3", results.TotalDirs)
	}

	rows := readReport(t, results.ReportPath)
	if len(rows) != 7 { // header + 6 data rows
		t.Errorf("Report rows = %d, want 7", len(rows))
	}
}

func TestScanEmptyDirectory(t *testing.T) {
	cfg := testConfig(t)

	reporter := NewReporter(cfg, zap.NewNop())
	results, err := reporter.Scan(t.TempDir())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if results.TotalFiles != 0 {
		t.Errorf("Scan() TotalFiles = %d, want 0", results.TotalFiles)
	}

	rows := readReport(t, results.ReportPath)
	if len(rows) != 1 {
		t.Errorf("Report rows = %d, want 1 (header only)", len(rows))
	}
}

func TestScanMissingDirectory(t *testing.T) {
	cfg := testConfig(t)
	missing := filepath.Join(t.TempDir(), "does_not_exist")

	reporter := NewReporter(cfg, zap.NewNop())
	_, err := reporter.Scan(missing)

	if !errors.Is(err, ErrDirectoryNotFound) {
		t.Fatalf("Scan() error = %v, want ErrDirectoryNotFound", err)
	}
	if _, statErr := os.Stat(cfg.OutputFile); !os.IsNotExist(statErr) {
		t.Error("Scan() wrote a report for a missing directory")
	}
}

func TestScanPathIsFile(t *testing.T) {
	cfg := testConfig(t)
	filePath := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(filePath, []byte("data"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	reporter := NewReporter(cfg, zap.NewNop())
	_, err := reporter.Scan(filePath)

	if !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("Scan() error = %v, want ErrNotDirectory", err)
	}
}

func TestScanRoundTrip(t *testing.T) {
	root := newFixtureTree(t)
	cfg := testConfig(t)
	cfg.Recursive = true

	reporter := NewReporter(cfg, zap.NewNop())
	results, err := reporter.Scan(root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	rows := readReport(t, results.ReportPath)
	if len(rows)-1 != results.TotalFiles {
		t.Fatalf("Report data rows = %d, want %d", len(rows)-1, results.TotalFiles)
	}

	// Sizes and names recovered from the CSV must match the filesystem
	for _, row := range rows[1:] {
		name, path, sizeField := row[0], row[1], row[2]

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Report row references unreadable file %q: %v", path, err)
		}
		if filepath.Base(path) != name {
			t.Errorf("Report name = %q, want %q", name, filepath.Base(path))
		}
		size, err := strconv.ParseInt(sizeField, 10, 64)
		if err != nil {
			t.Fatalf("Report size %q not an integer: %v", sizeField, err)
		}
		if size != info.Size() {
			t.Errorf("Report size for %q = %d, want %d", path, size, info.Size())
		}
	}
}

func TestScanEscapesSpecialNames(t *testing.T) {
	root := newFixtureTree(t)
	cfg := testConfig(t)

	reporter := NewReporter(cfg, zap.NewNop())
	results, err := reporter.Scan(root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	rows := readReport(t, results.ReportPath)
	found := false
	for _, row := range rows[1:] {
		if row[0] == `we,ird "name".txt` {
			found = true
		}
	}
	if !found {
		t.Error("Report did not recover the comma/quote file name")
	}
}

func TestScanExtensionFilter(t *testing.T) {
	root := newFixtureTree(t)
	cfg := testConfig(t)
	cfg.Recursive = true
	cfg.Extensions = []string{"txt"}

	reporter := NewReporter(cfg, zap.NewNop())
	results, err := reporter.Scan(root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if results.TotalFiles != 3 {
		t.Errorf("Scan() TotalFiles = %d, want 3 txt files", results.TotalFiles)
	}
	for _, record := range results.Records {
		if record.Extension != "txt" {
			t.Errorf("Scan() recorded %q despite extension filter", record.Path)
		}
	}
	if results.SkippedEntries != 3 {
		t.Errorf("Scan() SkippedEntries = %d, want 3", results.SkippedEntries)
	}
}

func TestScanMaxSizeFilter(t *testing.T) {
	root := newFixtureTree(t)
	cfg := testConfig(t)
	cfg.Recursive = true
	cfg.MaxSize = "4" // bytes

	reporter := NewReporter(cfg, zap.NewNop())
	results, err := reporter.Scan(root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	for _, record := range results.Records {
		if record.Size > 4 {
			t.Errorf("Scan() recorded %q with size %d despite max size 4", record.Path, record.Size)
		}
	}
}

func TestScanInvalidMaxSize(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxSize = "not-a-size"

	reporter := NewReporter(cfg, zap.NewNop())
	_, err := reporter.Scan(t.TempDir())
	if err == nil {
		t.Error("Scan() expected error for invalid max size, got nil")
	}
}

func TestScanSkipsUnreadableEntries(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed when running as root")
	}

	root := newFixtureTree(t)
	locked := filepath.Join(root, "locked")
	if err := os.MkdirAll(locked, 0755); err != nil {
		t.Fatalf("Failed to create test directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(locked, "secret.txt"), []byte("secret"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatalf("Failed to chmod test directory: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	cfg := testConfig(t)
	cfg.Recursive = true

	reporter := NewReporter(cfg, zap.NewNop())
	results, err := reporter.Scan(root)

	// Per-file access failures are not fatal to the scan
	if err != nil {
		t.Fatalf("Scan() error = %v, want nil", err)
	}
	if results.TotalFiles != 6 {
		t.Errorf("Scan() TotalFiles = %d, want 6 readable files", results.TotalFiles)
	}
	if results.Stats.ReadErrors != 1 {
		t.Errorf("Stats.ReadErrors = %d, want 1", results.Stats.ReadErrors)
	}
	if len(results.Stats.ErrorPaths) != 1 || results.Stats.ErrorPaths[0] != locked {
		t.Errorf("Stats.ErrorPaths = %v, want [%s]", results.Stats.ErrorPaths, locked)
	}

	rows := readReport(t, results.ReportPath)
	if len(rows) != 7 { // header + 6 readable files
		t.Errorf("Report rows = %d, want 7", len(rows))
	}
	for _, row := range rows[1:] {
		if filepath.Dir(row[1]) == locked {
			t.Errorf("Report contains row from unreadable directory: %q", row[1])
		}
	}
}

func TestScanStats(t *testing.T) {
	root := newFixtureTree(t)
	cfg := testConfig(t)
	cfg.Recursive = true

	reporter := NewReporter(cfg, zap.NewNop())
	results, err := reporter.Scan(root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	var wantTotal int64
	for _, record := range results.Records {
		wantTotal += record.Size
	}
	if results.Stats.TotalSize != wantTotal {
		t.Errorf("Stats.TotalSize = %d, want %d", results.Stats.TotalSize, wantTotal)
	}
	if results.Stats.LargestFileSize != 15 { // "comma and quote"
		t.Errorf("Stats.LargestFileSize = %d, want 15", results.Stats.LargestFileSize)
	}
	if results.Stats.AverageFileSize != wantTotal/int64(results.TotalFiles) {
		t.Errorf("Stats.AverageFileSize = %d, want %d",
			results.Stats.AverageFileSize, wantTotal/int64(results.TotalFiles))
	}
	if results.Stats.ReadErrors != 0 {
		t.Errorf("Stats.ReadErrors = %d, want 0", results.Stats.ReadErrors)
	}
	if results.Duration <= 0 {
		t.Error("Scan() Duration not set")
	}
}
