package reporter

import (
	"fmt"
	"html"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Sla0ui/linkrisk/internal/models"
)

var verdictBadges = map[models.Verdict]string{
	models.VerdictSafe:       "badge-safe",
	models.VerdictSuspicious: "badge-suspicious",
	models.VerdictUnsafe:     "badge-unsafe",
}

// GenerateHTML creates an HTML report. Every URL and message is escaped.
func (r *Reporter) GenerateHTML(outputPath string) error {
	stats := r.GetStats()

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>linkrisk URL Risk Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        h1, h2, h3 { color: #2c3e50; }
        .container { max-width: 1200px; margin: 0 auto; }
        .summary { background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
        .stats { display: flex; gap: 20px; margin: 20px 0; }
        .stat-box { flex: 1; padding: 15px; border-radius: 5px; text-align: center; }
        .safe { background-color: #d4edda; color: #155724; }
        .suspicious { background-color: #fff3cd; color: #856404; }
        .unsafe { background-color: #f8d7da; color: #721c24; }
        table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        th, td { padding: 12px; text-align: left; border-bottom: 1px solid #ddd; vertical-align: top; }
        th { background-color: #f2f2f2; }
        tr:hover { background-color: #f5f5f5; }
        td.url { word-break: break-all; }
        .badge { display: inline-block; padding: 3px 7px; border-radius: 3px; font-size: 12px; margin-right: 5px; }
        .badge-safe { background-color: #d4edda; color: #155724; }
        .badge-suspicious { background-color: #fff3cd; color: #856404; }
        .badge-unsafe { background-color: #f8d7da; color: #721c24; }
    </style>
</head>
<body>
    <div class="container">
        <h1>linkrisk URL Risk Report</h1>
        <div class="summary">
            <p>Report generated on: ` + time.Now().Format("January 2, 2006 15:04:05") + `</p>
            <p>Total URLs analyzed: ` + strconv.Itoa(len(r.records)) + `</p>
        </div>

        <div class="stats">`)

	for _, v := range models.Verdicts {
		b.WriteString(`
            <div class="stat-box ` + strings.ToLower(string(v)) + `">
                <h3>` + string(v) + `</h3>
                <p>` + strconv.Itoa(stats[v]) + `</p>
            </div>`)
	}

	b.WriteString(`
        </div>

        <table>
            <tr>
                <th>URL</th>
                <th>Verdict</th>
                <th>Score</th>
                <th>Safe</th>
                <th>Findings</th>
            </tr>`)

	for _, record := range r.records {
		var findings strings.Builder
		for _, f := range record.Result.Findings {
			findings.WriteString(`<li>` + html.EscapeString(f.Message) + ` <small>(+` + strconv.Itoa(f.Weight) + `)</small></li>`)
		}

		b.WriteString(`
            <tr>
                <td class="url">` + html.EscapeString(record.URL) + `</td>
                <td><span class="badge ` + verdictBadges[record.Result.Verdict] + `">` + html.EscapeString(string(record.Result.Verdict)) + `</span></td>
                <td>` + strconv.Itoa(record.Result.Score) + `</td>
                <td>` + strconv.Itoa(record.Result.SafePercent) + `%</td>
                <td><ul>` + findings.String() + `</ul></td>
            </tr>`)
	}

	b.WriteString(`
        </table>
    </div>
</body>
</html>`)

	if err := os.WriteFile(outputPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}
	return nil
}
