package reporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// GenerateCSV creates a CSV report
func (r *Reporter) GenerateCSV(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.Write([]string{"URL", "Host", "RegistrableDomain", "Verdict", "Score", "SafePercent", "Findings", "CheckedAt"})

	for _, record := range r.records {
		w.Write([]string{
			record.URL,
			record.Host,
			record.RegistrableDomain,
			string(record.Result.Verdict),
			strconv.Itoa(record.Result.Score),
			strconv.Itoa(record.Result.SafePercent),
			strings.Join(record.Result.Messages(), " | "),
			record.CheckedAt.Format(time.RFC3339),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}

	return nil
}
