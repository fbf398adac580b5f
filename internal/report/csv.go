package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"dircensus/pkg/models"
)

// Header returns the CSV column names, in output order
func Header() []string {
	return []string{"name", "path", "size", "modified"}
}

// generateCSV writes a CSV report with a header row and one row per record
func (g *Generator) generateCSV(results *models.ScanResults, outputFile string) error {
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, record := range results.Records {
		row := []string{
			record.Name,
			record.Path,
			strconv.FormatInt(record.Size, 10),
			record.ModTime.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", record.Path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}

	return file.Sync()
}
