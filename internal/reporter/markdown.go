package reporter

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Sla0ui/linkrisk/internal/models"
)

// GenerateMarkdown creates a Markdown report
func (r *Reporter) GenerateMarkdown(outputPath string) error {
	stats := r.GetStats()

	var b strings.Builder
	b.WriteString("# linkrisk URL Risk Report\n\n")
	b.WriteString("Report generated on: " + time.Now().Format("January 2, 2006 15:04:05") + "\n\n")

	b.WriteString("## Summary\n\n")
	b.WriteString("- Total URLs analyzed: " + strconv.Itoa(len(r.records)) + "\n")
	for _, v := range models.Verdicts {
		b.WriteString("- " + string(v) + ": " + strconv.Itoa(stats[v]) + "\n")
	}
	b.WriteString("\n")

	b.WriteString("## Results\n\n")
	b.WriteString("| URL | Verdict | Score | Safe | Findings |\n")
	b.WriteString("|-----|---------|-------|------|----------|\n")

	for _, record := range r.records {
		b.WriteString("| " + markdownCell(record.URL) +
			" | " + string(record.Result.Verdict) +
			" | " + strconv.Itoa(record.Result.Score) +
			" | " + strconv.Itoa(record.Result.SafePercent) + "%" +
			" | " + markdownCell(strings.Join(record.Result.Messages(), "; ")) + " |\n")
	}

	b.WriteString("\n")

	if err := os.WriteFile(outputPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write Markdown file: %w", err)
	}
	return nil
}

func markdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
