package reporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sla0ui/linkrisk/internal/models"
)

// Reporter handles generating scan reports in various formats
type Reporter struct {
	records   []*models.ScanRecord
	outputDir string
}

// New creates a new Reporter instance
func New(records []*models.ScanRecord, outputDir string) *Reporter {
	return &Reporter{
		records:   records,
		outputDir: outputDir,
	}
}

// WriteResultsToFiles writes results to the standard output files
func (r *Reporter) WriteResultsToFiles() error {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := r.GenerateJSON(filepath.Join(r.outputDir, "scan_results.json")); err != nil {
		return err
	}
	if err := r.GenerateCSV(filepath.Join(r.outputDir, "url_risk_log.csv")); err != nil {
		return err
	}

	// One URL list per verdict
	lists := make(map[models.Verdict]*strings.Builder, len(models.Verdicts))
	for _, v := range models.Verdicts {
		lists[v] = &strings.Builder{}
	}
	for _, record := range r.records {
		if b, ok := lists[record.Result.Verdict]; ok {
			b.WriteString(record.URL + "\n")
		}
	}
	for _, v := range models.Verdicts {
		name := filepath.Join(r.outputDir, strings.ToLower(string(v))+"_urls.txt")
		if err := os.WriteFile(name, []byte(lists[v].String()), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	return nil
}

// GenerateReport creates a report in each of the comma-separated formats
func (r *Reporter) GenerateReport(outputPath, format string) error {
	formats, err := models.ParseFormats(format)
	if err != nil {
		return err
	}
	if len(formats) == 0 {
		return fmt.Errorf("no report format given")
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	outputBase := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))

	for _, f := range formats {
		switch f {
		case "json":
			err = r.GenerateJSON(outputBase + ".json")
		case "csv":
			err = r.GenerateCSV(outputBase + ".csv")
		case "html":
			err = r.GenerateHTML(outputBase + ".html")
		case "markdown", "md":
			err = r.GenerateMarkdown(outputBase + ".md")
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// GetStats returns the number of records per verdict
func (r *Reporter) GetStats() map[models.Verdict]int {
	stats := make(map[models.Verdict]int, len(models.Verdicts))
	for _, v := range models.Verdicts {
		stats[v] = 0
	}
	for _, record := range r.records {
		stats[record.Result.Verdict]++
	}
	return stats
}

// LoadRecords reads records previously written by GenerateJSON
func LoadRecords(path string) ([]*models.ScanRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}

	var records []*models.ScanRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse results file %s: %w", path, err)
	}

	// hand-edited files may hold null entries
	kept := records[:0]
	for _, record := range records {
		if record != nil {
			kept = append(kept, record)
		}
	}
	return kept, nil
}
