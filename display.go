package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Sla0ui/linkrisk/internal/detector"
	"github.com/Sla0ui/linkrisk/internal/models"
)

const separator = "--------------------------------"

func printBanner() {
	if config.Quiet {
		return
	}
	fmt.Printf("\n%s %s - %s\n\n", cyan(AppName), AppVersion, AppRepo)
}

func infof(format string, args ...any) {
	if !config.Quiet {
		fmt.Printf("%s %s\n", blue("INFO:"), fmt.Sprintf(format, args...))
	}
}

func successf(format string, args ...any) {
	if !config.Quiet {
		fmt.Printf("%s %s\n", green("SUCCESS:"), fmt.Sprintf(format, args...))
	}
}

func verbosef(format string, args ...any) {
	if config.LogVerbose && !config.Quiet {
		fmt.Printf("%s %s\n", yellow("DEBUG:"), fmt.Sprintf(format, args...))
	}
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", yellow("WARN:"), fmt.Sprintf(format, args...))
}

func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", red("ERROR:"), fmt.Sprintf(format, args...))
}

func colorVerdict(v models.Verdict) string {
	switch v {
	case models.VerdictSafe:
		return green(string(v))
	case models.VerdictSuspicious:
		return yellow(string(v))
	default:
		return red(string(v))
	}
}

func displaySingleResult(record *models.ScanRecord) {
	result := record.Result

	fmt.Println("\n" + separator)
	fmt.Printf("URL is %s\n", colorVerdict(result.Verdict))
	fmt.Println(separator)
	fmt.Printf("URL: %s\n", cyan(record.URL))

	if record.Host != "" {
		fmt.Printf("Host: %s\n", record.Host)
	}
	if record.RegistrableDomain != "" {
		fmt.Printf("Registrable Domain: %s\n", record.RegistrableDomain)
	}

	fmt.Printf("Risk Score: %d\n", result.Score)
	fmt.Printf("Safe: %d%%\n", result.SafePercent)

	if len(result.Findings) > 0 {
		fmt.Printf("\nFindings:\n")
		for _, f := range result.Findings {
			fmt.Printf("  %s %s %s\n", magenta(fmt.Sprintf("+%d", f.Weight)), f.Message, yellow("["+f.RuleID+"]"))
		}
	} else {
		fmt.Printf("\n%s\n", green("No findings"))
	}

	fmt.Println(separator)
}

func displaySummary(stats map[models.Verdict]int) {
	if config.Quiet {
		return
	}

	fmt.Printf("\n%s Results: %s safe, %s suspicious, %s unsafe\n",
		blue("SUMMARY:"),
		green(stats[models.VerdictSafe]),
		yellow(stats[models.VerdictSuspicious]),
		red(stats[models.VerdictUnsafe]))
}

func displayRules(rules []detector.Rule) {
	if len(rules) == 0 {
		fmt.Printf("%s No rules match\n", yellow("WARN:"))
		return
	}

	idWidth, categoryWidth := len("ID"), len("CATEGORY")
	for _, r := range rules {
		idWidth = max(idWidth, len(r.ID))
		categoryWidth = max(categoryWidth, len(r.Category))
	}

	fmt.Printf("%-*s  %-*s  %6s  %s\n", idWidth, "ID", categoryWidth, "CATEGORY", "WEIGHT", "MESSAGE")
	fmt.Println(strings.Repeat("-", idWidth+categoryWidth+len("MESSAGE")+12))
	for _, r := range rules {
		fmt.Printf("%-*s  %-*s  %6d  %s\n", idWidth, r.ID, categoryWidth, r.Category, r.Weight, r.Message)
	}
	fmt.Printf("\n%s %s rules\n", blue("TOTAL:"), magenta(len(rules)))
}
