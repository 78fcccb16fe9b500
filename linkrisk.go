package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Sla0ui/linkrisk/internal/analyzer"
	"github.com/Sla0ui/linkrisk/internal/detector"
	"github.com/Sla0ui/linkrisk/internal/models"
	"github.com/Sla0ui/linkrisk/internal/reporter"
	"github.com/Sla0ui/linkrisk/internal/scanner"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	AppName    = "linkrisk"
	AppVersion = "1.0.0"
	AppRepo    = "https://github.com/Sla0ui/linkrisk"

	configFileName = ".linkrisk.yaml"
	exitFailOn     = 2
)

var (
	config  *models.Config
	rootCmd *cobra.Command

	green   = color.New(color.FgGreen).SprintFunc()
	red     = color.New(color.FgRed).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	blue    = color.New(color.FgBlue).SprintFunc()
	cyan    = color.New(color.FgCyan).SprintFunc()
	magenta = color.New(color.FgMagenta).SprintFunc()
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "linkrisk [flags] URL_FILE",
		Short: "Heuristic phishing risk scoring for URLs",
		Long: `linkrisk scores URLs against a fixed catalogue of weighted heuristics
(brand impersonation, phishing keywords, typosquatting, encoded redirects,
homoglyphs, structural anomalies) and reports a verdict with findings.
No network lookups are made.

Examples:
  linkrisk urls.txt
  linkrisk analyze http://go0gle.com
  linkrisk check -c 10 --export reports/scan --output-format html,md urls.txt
  linkrisk rules brand`,
		Version:       AppVersion,
		Args:          cobra.ExactArgs(1),
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", configFileName, "Path to YAML config file")
	rootCmd.PersistentFlags().BoolP("no-color", "n", false, "Disable colorized output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Quiet mode - only output to files")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	rootCmd.Flags().IntP("concurrency", "c", 5, "Maximum number of concurrent checks")
	rootCmd.Flags().StringP("output-dir", "o", "results", "Directory for output files")
	rootCmd.Flags().Bool("no-progress", false, "Disable progress bar")
	rootCmd.Flags().String("output-format", "json", "Export format(s) - comma separated (json,csv,html,md)")
	rootCmd.Flags().String("export", "", "Export path for a bundled report")
	rootCmd.Flags().String("fail-on", "", "Exit with status 2 if any URL is at least this verdict (suspicious, unsafe)")

	checkCmd := &cobra.Command{
		Use:   "check [flags] URL_FILE",
		Short: "Analyze URLs from a file",
		Long:  `Analyze every URL listed in the specified file, one per line.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
	checkCmd.Flags().AddFlagSet(rootCmd.Flags())
	rootCmd.AddCommand(checkCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [flags] URL...",
		Short: "Analyze URLs given on the command line",
		Long:  `Analyze one or more URLs without requiring a file.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().Bool("json", false, "Print results as JSON")
	analyzeCmd.Flags().String("fail-on", "", "Exit with status 2 if any URL is at least this verdict")
	rootCmd.AddCommand(analyzeCmd)

	rulesCmd := &cobra.Command{
		Use:   "rules [QUERY]",
		Short: "List the rule catalogue",
		Long:  `List every rule with its category and weight. QUERY fuzzily filters rule ids, categories and messages.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRules,
	}
	rootCmd.AddCommand(rulesCmd)

	reportCmd := &cobra.Command{
		Use:   "report [flags]",
		Short: "Generate a report from scan results",
		Long:  `Generate a report from a scan_results.json file in various formats.`,
		Args:  cobra.NoArgs,
		RunE:  runReportGeneration,
	}
	reportCmd.Flags().StringP("input", "i", filepath.Join("results", "scan_results.json"), "Input results file (JSON format)")
	reportCmd.Flags().StringP("output", "o", "report", "Output file prefix")
	reportCmd.Flags().StringP("format", "f", "html", "Report format(s) - comma separated (json,csv,html,md)")
	rootCmd.AddCommand(reportCmd)

	watchCmd := &cobra.Command{
		Use:   "watch [flags] URL_FILE",
		Short: "Re-analyze a URL file whenever it changes",
		Long:  `Analyze the URL file, then analyze it again every time it is written, until interrupted.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
	watchCmd.Flags().AddFlagSet(rootCmd.Flags())
	watchCmd.Flags().Duration("debounce", 500*time.Millisecond, "Wait this long after a change before rescanning")
	rootCmd.AddCommand(watchCmd)
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errFailOn) {
			os.Exit(exitFailOn)
		}
		fmt.Fprintf(os.Stderr, "%s %v\n", red("ERROR:"), err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, the YAML file, the environment and finally flags
func loadConfig(cmd *cobra.Command) error {
	config = models.DefaultConfig()

	configPath, _ := cmd.Flags().GetString("config")
	if err := models.LoadConfigFile(configPath, config); err != nil {
		return err
	}
	config.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("concurrency") {
		config.MaxConcurrentChecks, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("output-dir") {
		config.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("output-format") {
		config.OutputFormat, _ = flags.GetString("output-format")
	}
	if flags.Changed("export") {
		config.ExportPath, _ = flags.GetString("export")
	}
	if flags.Changed("fail-on") {
		config.FailOn, _ = flags.GetString("fail-on")
	}
	if flags.Changed("debounce") {
		config.WatchDebounce, _ = flags.GetDuration("debounce")
	}
	if v, _ := flags.GetBool("no-progress"); v {
		config.NoProgress = true
	}
	if v, _ := flags.GetBool("no-color"); v {
		config.NoColor = true
	}
	if v, _ := flags.GetBool("quiet"); v {
		config.Quiet = true
	}
	if v, _ := flags.GetBool("verbose"); v {
		config.LogVerbose = true
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		config.NoProgress = true
	}
	if config.NoColor {
		color.NoColor = true
	}

	return config.Validate()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	urls, err := scanner.ReadURLsFromFile(args[0])
	if err != nil {
		return err
	}

	s, err := scanner.New(config, analyzer.Default())
	if err != nil {
		return err
	}

	printBanner()
	infof("Starting analysis of %s URLs", magenta(len(urls)))
	verbosef("Using %d workers", config.MaxConcurrentChecks)

	records, err := s.ScanURLs(ctx, urls)
	if err != nil {
		warnf("Analysis interrupted after %d of %d URLs: %v", len(records), len(urls), err)
	}

	if err := processResults(records); err != nil {
		return err
	}

	return checkFailOn(records)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	s, err := scanner.New(config, analyzer.Default())
	if err != nil {
		return err
	}

	records := make([]*models.ScanRecord, len(args))
	for i, url := range args {
		records[i] = s.ScanURL(url)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
	} else if !config.Quiet {
		for _, record := range records {
			displaySingleResult(record)
		}
	}

	return checkFailOn(records)
}

func runRules(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	rules := detector.Default().Filter(query)
	displayRules(rules)
	return nil
}

func runReportGeneration(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	records, err := reporter.LoadRecords(input)
	if err != nil {
		return err
	}

	infof("Generating %s report for %s URLs", cyan(format), magenta(len(records)))
	if err := reporter.New(records, config.OutputDir).GenerateReport(output, format); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	successf("Report written to %s", output)
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}
	config.NoProgress = true

	ctx, cancel := signalContext()
	defer cancel()

	s, err := scanner.New(config, analyzer.Default())
	if err != nil {
		return err
	}

	printBanner()
	infof("Watching %s (Ctrl+C to stop)", cyan(args[0]))
	return s.Watch(ctx, args[0], func(records []*models.ScanRecord, err error) {
		if err != nil && len(records) == 0 {
			errorf("%v", err)
			return
		}
		if err := processResults(records); err != nil {
			errorf("%v", err)
		}
	})
}

// processResults writes the standard files, the optional export and a summary
func processResults(records []*models.ScanRecord) error {
	r := reporter.New(records, config.OutputDir)

	if err := r.WriteResultsToFiles(); err != nil {
		return err
	}
	verbosef("Results written to %s", config.OutputDir)

	if config.ExportPath != "" {
		if err := r.GenerateReport(config.ExportPath, config.OutputFormat); err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}
		infof("Report exported to %s (%s)", config.ExportPath, config.OutputFormat)
	}

	displaySummary(r.GetStats())
	return nil
}

// errFailOn signals that a record reached the --fail-on verdict
var errFailOn = errors.New("fail-on threshold reached")

// checkFailOn returns errFailOn when a record reaches the configured verdict
func checkFailOn(records []*models.ScanRecord) error {
	threshold, ok := config.FailVerdict()
	if !ok {
		return nil
	}

	for _, record := range records {
		if record.Result.Verdict.AtLeast(threshold) {
			if !config.Quiet {
				fmt.Fprintf(os.Stderr, "%s %s is %s (fail-on %s)\n",
					red("FAIL:"), record.URL, record.Result.Verdict, threshold)
			}
			return errFailOn
		}
	}
	return nil
}
