package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dircensus/internal/config"
	"dircensus/internal/core"
	"dircensus/internal/report"
)

// ANSI colors
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorGray  = "\033[38;5;245m"
)

var (
	version = "0.0.1"
	logger  *zap.Logger
	verbose bool
	debug   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dircensus",
		Short: "Dircensus - Directory manifest generator",
		Long: `Walks a directory tree and writes a CSV manifest describing every file
found: name, path, size and last-modified time.`,
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Log debug output to crawl.log in the scanned directory")

	rootCmd.AddCommand(scanCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	var (
		dir        string
		recursive  bool
		outputFile string
		format     string
		exclude    []string
		extensions []string
		maxSize    string
		skipHidden bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a directory and write a file manifest",
		Long: `Enumerate the files in a directory (optionally recursing into
subdirectories) and write one manifest row per file. When --dir is
omitted, the directory and recursion choice are prompted interactively.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			if err := validateFlags(format); err != nil {
				fmt.Printf("\n  %s✗ Invalid parameter:%s %s\n\n", colorRed, colorReset, err.Error())
				return err
			}

			// Prompt for missing parameters before anything else so the
			// wizard output does not interleave with log lines
			wizardRan := false
			if dir == "" {
				answer, err := runScanWizard()
				if err != nil {
					return err
				}
				dir = answer.Dir
				recursive = answer.Recursive
				wizardRan = true
			}

			// Initialize logger based on verbosity flags
			var err error
			logger, err = buildLogger(dir)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
				return err
			}
			defer logger.Sync()

			// Load configuration
			cfg, err := config.LoadConfig()
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			// Override config with CLI flags
			cfg.Dir = dir
			if wizardRan || cmd.Flags().Changed("recursive") || recursive {
				cfg.Recursive = recursive
			}
			if outputFile != "" {
				cfg.OutputFile = outputFile
			}
			if format != "" {
				cfg.Format = format
			}
			if len(exclude) > 0 {
				cfg.Exclude = exclude
			}
			if len(extensions) > 0 {
				cfg.Extensions = extensions
			}
			if maxSize != "" {
				cfg.MaxSize = maxSize
			}
			if skipHidden {
				cfg.IncludeHidden = false
			}

			reporter := core.NewReporter(cfg, logger)
			reporter.SetProgressCallback(progressPrinter())

			results, err := reporter.Scan(cfg.Dir)
			if err != nil {
				logger.Error("Scan failed", zap.Error(err))
				return err
			}

			report.NewGenerator(cfg, logger).PrintSummary(results)
			if results.ReportPath != "" {
				fmt.Printf("  %sReport:%s    %s%s%s\n", colorGray, colorReset, colorGreen, results.ReportPath, colorReset)
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to scan (prompted interactively when omitted)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Also scan all subdirectories")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Report path (default: contents.csv inside the scanned directory)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Report format: csv, json (default: csv)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Directory names to skip during recursive scans (comma-separated)")
	cmd.Flags().StringSliceVar(&extensions, "extensions", nil, "Only record files with these extensions (comma-separated)")
	cmd.Flags().StringVar(&maxSize, "max-size", "", "Skip files larger than this size (e.g. 650K, 10M)")
	cmd.Flags().BoolVar(&skipHidden, "skip-hidden", false, "Skip hidden files and directories")

	return cmd
}

// validateFlags validates CLI flag values
func validateFlags(format string) error {
	if format != "" && format != "csv" && format != "json" {
		return fmt.Errorf("--format must be one of: csv, json (got: %s)", format)
	}
	return nil
}

// buildLogger constructs the zap logger for the run. With --debug the
// development logger additionally writes to crawl.log in the scanned
// directory; otherwise only errors go to stderr.
func buildLogger(dir string) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr", filepath.Join(dir, "crawl.log")}
		return cfg.Build()
	}
	if verbose {
		return zap.NewDevelopment()
	}
	// Silent logger - only errors
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
		Encoding:         "json",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}
	return cfg.Build()
}

// progressPrinter returns a progress callback that renders scan progress
func progressPrinter() core.ProgressCallback {
	lastPhase := ""
	return func(phase string, current, total int, message string) {
		// Clear previous line if same phase
		if lastPhase == phase && phase != "counting" {
			fmt.Print("\033[1A\033[K")
		}
		lastPhase = phase

		switch phase {
		case "counting":
			if current == 0 && total == 0 {
				fmt.Printf("\n  %sStarting scan...%s\n", colorReset, colorReset)
			}
			if total > 0 {
				fmt.Printf("  %sFiles:%s     %s\n", colorGray, colorReset, message)
			}
		case "scanning":
			if total > 0 {
				pct := float64(current) / float64(total) * 100
				fmt.Printf("  %sScanning:%s  %s%.1f%%%s (%d/%d)\n",
					colorGray, colorReset, colorGreen, pct, colorReset, current, total)
			}
		}
	}
}

// ScanWizardResult holds the interactively gathered scan parameters
type ScanWizardResult struct {
	Dir       string
	Recursive bool
}

// runScanWizard prompts for the directory and the recursion choice
func runScanWizard() (*ScanWizardResult, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println()
	fmt.Printf("  %sEnter the path to the directory you want to scan:%s\n", colorBold, colorReset)
	fmt.Printf("  %s> %s", colorGreen, colorReset)

	dirInput, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	dir := strings.TrimSpace(dirInput)
	if dir == "" {
		return nil, fmt.Errorf("no directory given")
	}

	// Loop until a valid answer
	for {
		fmt.Println()
		fmt.Printf("  %sDo you want to also scan all subdirectories? [Y/N]:%s\n", colorBold, colorReset)
		fmt.Printf("  %s> %s", colorGreen, colorReset)

		answerInput, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}

		switch strings.ToUpper(strings.TrimSpace(answerInput)) {
		case "Y", "YES":
			return &ScanWizardResult{Dir: dir, Recursive: true}, nil
		case "N", "NO":
			return &ScanWizardResult{Dir: dir, Recursive: false}, nil
		default:
			fmt.Printf("  %sBad choice%s\n", colorGray, colorReset)
		}
	}
}
