package rules

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/httpclient"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// downloadedRulesFileName is where remote rules files are cached. A file
// that already exists is reused, delete it to force a re-download.
var downloadedRulesFileName = "keyhunter-rules.yml"

type rulesFile struct {
	Patterns []patternElement `yaml:"patterns"`
}

type patternElement struct {
	Pattern patternSpec `yaml:"pattern"`
}

type patternSpec struct {
	Name       string `yaml:"name"`
	Regex      string `yaml:"regex"`
	Confidence string `yaml:"confidence"`
}

// LoadExtra reads additional secret patterns from a YAML rules file. The
// source may be a local path or an http(s) URL; URLs are downloaded once
// and cached on disk. Entries with regexes that fail to compile are
// skipped with a warning rather than failing the whole load.
func LoadExtra(source string) ([]Pattern, error) {
	path := source
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		var err error
		path, err = downloadRulesFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed downloading rules file: %w", err)
		}
	}

	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed opening rules file: %w", err)
	}

	parsed := rulesFile{}
	if err := yaml.Unmarshal(yamlFile, &parsed); err != nil {
		return nil, fmt.Errorf("failed unmarshalling rules file: %w", err)
	}

	patterns := make([]Pattern, 0, len(parsed.Patterns))
	for _, element := range parsed.Patterns {
		spec := element.Pattern
		re, err := regexp.Compile(spec.Regex)
		if err != nil {
			log.Warn().Err(err).Str("name", spec.Name).Str("regex", spec.Regex).Msg("Skipping rule, failed compiling regex expression")
			continue
		}
		confidence := spec.Confidence
		if confidence == "" {
			confidence = ConfidenceLow
		}
		patterns = append(patterns, Pattern{Name: spec.Name, Confidence: confidence, Regex: re})
	}

	log.Debug().Int("count", len(patterns)).Str("source", source).Msg("Loaded extra rules")
	return patterns, nil
}

func downloadRulesFile(url string) (string, error) {
	if _, err := os.Stat(downloadedRulesFileName); err == nil {
		log.Debug().Str("file", downloadedRulesFileName).Msg("Reusing cached rules file")
		return downloadedRulesFileName, nil
	}

	out, err := os.Create(downloadedRulesFileName)
	if err != nil {
		return "", err
	}
	defer func() { _ = out.Close() }()

	client := httpclient.GetKeyhunterHTTPClient(nil)
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("rules download returned status %d", resp.StatusCode)
	}

	if _, err = io.Copy(out, resp.Body); err != nil {
		return "", err
	}

	return downloadedRulesFileName, nil
}
