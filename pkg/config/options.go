package config

import "time"

// ScanOptions carries the tunables of one scan invocation. The zero value
// is usable; DefaultScanOptions fills in the production defaults.
type ScanOptions struct {
	// ConfidenceFilter keeps only catalog patterns with a matching
	// confidence level. Empty means all patterns, including the broad
	// low-confidence ones.
	ConfidenceFilter []string

	// RulesFile optionally points to an extra YAML rules file, a local
	// path or an http(s) URL.
	RulesFile string

	// MaxFileSize in bytes. Larger files are skipped entirely during
	// directory scans, like binary files.
	MaxFileSize int64

	// FetchTimeout bounds the single GET of a URL scan. Zero disables
	// the timeout.
	FetchTimeout time.Duration

	// Progress, when set, is invoked once per visited file during a
	// directory scan.
	Progress func(path string)
}

// DefaultScanOptions returns the options used when the caller does not
// override anything.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		MaxFileSize:  10 * 1024 * 1024,
		FetchTimeout: 30 * time.Second,
	}
}
