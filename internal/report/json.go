package report

import (
	"encoding/json"
	"os"

	"dircensus/pkg/models"
)

// generateJSON writes the full scan results as indented JSON
func (g *Generator) generateJSON(results *models.ScanResults, outputFile string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, data, 0644)
}
