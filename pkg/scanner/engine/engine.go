// Package engine implements the scan engine: content acquisition from a
// directory tree or a fetched page, pattern extraction and aggregation into
// a scored report. One invocation is synchronous and single-threaded;
// concurrent invocations share nothing but the read-only pattern catalog.
package engine

import (
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/config"
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/scanner/rules"
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/scanner/types"
	"github.com/rs/zerolog/log"
)

func buildCatalog(opts config.ScanOptions) (*rules.Catalog, error) {
	catalog := rules.Default()
	if opts.RulesFile != "" {
		extra, err := rules.LoadExtra(opts.RulesFile)
		if err != nil {
			return nil, err
		}
		catalog = catalog.Extend(extra)
	}
	return catalog.WithConfidence(opts.ConfidenceFilter), nil
}

// ScanDirectory walks root and returns the assembled report. Fails fast
// with config.ErrInvalidDirectory before any file I/O when root does not
// exist or is not a directory. Unreadable files are logged, skipped and
// still counted; they never abort the walk.
func ScanDirectory(root string, opts config.ScanOptions) (*types.ScanReport, error) {
	if err := config.ValidateScanDirectory(root); err != nil {
		return nil, err
	}
	catalog, err := buildCatalog(opts)
	if err != nil {
		return nil, err
	}

	report := types.NewScanReport(root)
	err = walkDirectory(root, opts.MaxFileSize, func(rel string, data []byte, readErr error) {
		report.Summary.TotalFilesScanned++
		if opts.Progress != nil {
			opts.Progress(rel)
		}
		if readErr != nil {
			log.Warn().Err(readErr).Str("file", rel).Msg("Skipping unreadable file")
			return
		}
		extractFindings(types.ContentUnit{Path: rel, Text: string(data)}, catalog, report)
	})
	if err != nil {
		return nil, err
	}

	report.Finalize()
	log.Debug().
		Int("files", report.Summary.TotalFilesScanned).
		Int("issues", report.Summary.TotalIssues).
		Str("risk", string(report.Summary.RiskLevel)).
		Msg("Directory scan finished")
	return report, nil
}

// ScanURL fetches a single page and returns the assembled report. Fails
// with config.ErrInvalidURL before any network call for empty or
// scheme-less input, and with *FetchError when the request itself fails.
func ScanURL(rawURL string, opts config.ScanOptions) (*types.ScanReport, error) {
	if err := config.ValidateScanURL(rawURL); err != nil {
		return nil, err
	}
	catalog, err := buildCatalog(opts)
	if err != nil {
		return nil, err
	}

	report := types.NewScanReport(rawURL)
	unit, err := fetchPage(rawURL, opts.FetchTimeout)
	if err != nil {
		return nil, err
	}
	report.Summary.TotalFilesScanned = 1
	extractFindings(unit, catalog, report)

	report.Finalize()
	log.Debug().
		Int("issues", report.Summary.TotalIssues).
		Str("risk", string(report.Summary.RiskLevel)).
		Msg("URL scan finished")
	return report, nil
}
