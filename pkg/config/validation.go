package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/docker/go-units"
)

// ErrInvalidDirectory is returned when a scan target does not exist or is
// not a directory.
var ErrInvalidDirectory = errors.New("target is not a valid directory")

// ErrInvalidURL is returned when a scan URL is empty or lacks an http(s)
// scheme. No network request is made for such inputs.
var ErrInvalidURL = errors.New("invalid URL, must start with http:// or https://")

// ValidateScanDirectory checks that path exists and is a directory.
func ValidateScanDirectory(path string) error {
	if path == "" {
		return fmt.Errorf("%w: path is empty", ErrInvalidDirectory)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDirectory, path)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidDirectory, path)
	}
	return nil
}

// ValidateScanURL checks that rawURL is non-empty, carries an http(s)
// prefix and parses as a URL with a host.
func ValidateScanURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("%w: url is empty", ErrInvalidURL)
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
	return nil
}

// ParseMaxFileSize parses a human-readable size string (e.g., "10MB", "1GB")
// into bytes.
func ParseMaxFileSize(sizeStr string) (int64, error) {
	size, err := units.FromHumanSize(sizeStr)
	if err != nil {
		return 0, fmt.Errorf("failed to parse max file size: %w", err)
	}
	return size, nil
}
