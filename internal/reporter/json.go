package reporter

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Sla0ui/linkrisk/internal/models"
)

// GenerateJSON creates a JSON report
func (r *Reporter) GenerateJSON(outputPath string) error {
	records := r.records
	if records == nil {
		records = []*models.ScanRecord{}
	}

	jsonData, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	return nil
}
