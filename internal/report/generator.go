package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/docker/go-units"
	"go.uber.org/zap"

	"dircensus/internal/config"
	"dircensus/pkg/models"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorGreen = "\033[32m"
	colorGray  = "\033[38;5;245m"
)

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		// Milliseconds
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		// Seconds
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	// Minutes and seconds
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.2fs", mins, secs)
}

// Generator generates manifest reports in various formats
type Generator struct {
	config *config.Config
	logger *zap.Logger
}

// NewGenerator creates a new report generator
func NewGenerator(cfg *config.Config, logger *zap.Logger) *Generator {
	return &Generator{
		config: cfg,
		logger: logger,
	}
}

// Generate writes the report for the scan results and returns its path
func (g *Generator) Generate(results *models.ScanResults) (string, error) {
	format := g.config.Format
	if format == "" {
		format = "csv"
	}

	outputFile := g.config.OutputFile
	if outputFile == "" {
		// Default report lands inside the scanned directory
		switch format {
		case "csv":
			outputFile = filepath.Join(results.ScanPath, "contents.csv")
		case "json":
			outputFile = filepath.Join(results.ScanPath, "contents.json")
		default:
			return "", fmt.Errorf("unknown report format: %s", format)
		}
	}

	g.logger.Info("Generating report",
		zap.String("format", format),
		zap.String("output", outputFile))

	var err error
	switch format {
	case "csv":
		err = g.generateCSV(results, outputFile)
	case "json":
		err = g.generateJSON(results, outputFile)
	default:
		return "", fmt.Errorf("unknown report format: %s", format)
	}

	if err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	// Get absolute path
	absPath, err := filepath.Abs(outputFile)
	if err != nil {
		return "", fmt.Errorf("failed to resolve report path: %w", err)
	}
	return absPath, nil
}

// PrintSummary prints the scan summary to stdout
func (g *Generator) PrintSummary(results *models.ScanResults) {
	mode := "non-recursive"
	if results.Recursive {
		mode = "recursive"
	}

	fmt.Println()
	fmt.Printf("%s%sSCAN COMPLETE%s\n", colorBold, colorGreen, colorReset)
	fmt.Println()
	fmt.Printf("  %sPath:%s      %s\n", colorGray, colorReset, results.ScanPath)
	fmt.Printf("  %sMode:%s      %s\n", colorGray, colorReset, mode)
	fmt.Printf("  %sFiles:%s     %d\n", colorGray, colorReset, results.TotalFiles)
	fmt.Printf("  %sDirs:%s      %d\n", colorGray, colorReset, results.TotalDirs)
	fmt.Printf("  %sSize:%s      %s\n", colorGray, colorReset, units.HumanSize(float64(results.Stats.TotalSize)))
	fmt.Printf("  %sDuration:%s  %s\n", colorGray, colorReset, FormatDuration(results.Duration))
	if results.Stats.ReadErrors > 0 {
		fmt.Printf("  %sErrors:%s    %d files could not be read\n", colorGray, colorReset, results.Stats.ReadErrors)
	}
	fmt.Println()
}
