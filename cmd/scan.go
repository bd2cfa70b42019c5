package cmd

import (
	"encoding/json"
	"os"
	"sync/atomic"
	"time"

	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/config"
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/logging"
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/scanner"
	"github.com/docker/go-units"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	scanDir          string
	scanURL          string
	confidenceFilter []string
	rulesFile        string
	maxFileSize      string
	fetchTimeout     time.Duration
	jsonOutput       bool
	outputFile       string

	filesScanned atomic.Int64
)

func NewScanCmd() *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a directory tree or a single web page",
		Long: `Scan runs the full pattern catalog against every eligible file under a
directory, or against one fetched web page.

Examples:

# Scan a local project
keyhunter scan --dir ./my-project

# Scan a deployed page, including its inline scripts
keyhunter scan --url https://example.com

# Only high-confidence patterns, JSON report to a file
keyhunter scan --dir . --confidence high --json --output report.json
		`,
		Run: Scan,
	}

	scanCmd.Flags().StringVarP(&scanDir, "dir", "d", "", "Directory to scan recursively")
	scanCmd.Flags().StringVarP(&scanURL, "url", "u", "", "URL to fetch and scan")
	scanCmd.MarkFlagsMutuallyExclusive("dir", "url")
	scanCmd.MarkFlagsOneRequired("dir", "url")

	registerScanOptionFlags(scanCmd)
	scanCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Print the full report as JSON")
	scanCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the JSON report to a file")

	return scanCmd
}

// registerScanOptionFlags adds the engine tunables shared by scan and serve.
func registerScanOptionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&confidenceFilter, "confidence", "", []string{}, "Filter patterns by confidence level (high, low), separate by comma if multiple. Broad patterns are low confidence.")
	cmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "Extra rules YAML file, local path or URL")
	cmd.Flags().StringVarP(&maxFileSize, "max-file-size", "", "10MB", "Max file size to be included in scanning. Larger files are skipped. Format: https://pkg.go.dev/github.com/docker/go-units#FromHumanSize")
	cmd.Flags().DurationVarP(&fetchTimeout, "timeout", "", 30*time.Second, "Timeout for the page fetch of a URL scan, 0 disables it")
}

func buildScanOptions() config.ScanOptions {
	opts := config.DefaultScanOptions()
	opts.ConfidenceFilter = confidenceFilter
	opts.RulesFile = rulesFile
	opts.FetchTimeout = fetchTimeout

	byteSize, err := config.ParseMaxFileSize(maxFileSize)
	if err != nil {
		log.Fatal().Err(err).Str("size", maxFileSize).Msg("Failed parsing max-file-size flag")
	}
	opts.MaxFileSize = byteSize
	return opts
}

func Scan(cmd *cobra.Command, args []string) {
	go logging.ShortcutListeners(scanStatus)

	opts := buildScanOptions()
	opts.Progress = func(string) { filesScanned.Add(1) }

	var report *scanner.ScanReport
	var err error
	if scanDir != "" {
		report, err = scanner.ScanDirectory(scanDir, opts)
	} else {
		report, err = scanner.ScanURL(scanURL, opts)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Scan failed")
	}

	writeReport(report)
	log.Info().
		Int("files", report.Summary.TotalFilesScanned).
		Int("issues", report.Summary.TotalIssues).
		Str("risk", string(report.Summary.RiskLevel)).
		Str("duration", units.HumanDuration(report.Duration())).
		Msg("Scan finished, Bye Bye 🔑🔥")
}

func writeReport(report *scanner.ScanReport) {
	if !jsonOutput && outputFile == "" {
		return
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed marshalling report")
	}
	data = append(data, '\n')

	if outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0o644); err != nil {
			log.Fatal().Err(err).Str("file", outputFile).Msg("Failed writing report file")
		}
		log.Info().Str("file", outputFile).Msg("Report written")
	}
	if jsonOutput {
		_, _ = os.Stdout.Write(data)
	}
}

func scanStatus() *zerolog.Event {
	return log.Info().Int64("filesScanned", filesScanned.Load())
}
