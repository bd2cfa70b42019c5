package rules

import (
	"regexp"
	"slices"
)

// Confidence levels attached to built-in patterns. Broad patterns match
// generic alphanumeric or hex runs and are known to produce false positives;
// they are tagged low so callers can filter them out with --confidence.
const (
	ConfidenceHigh = "high"
	ConfidenceLow  = "low"
)

// Pattern is one named matcher of the catalog. Compiled once at process
// start and shared read-only across scan invocations.
type Pattern struct {
	Name       string
	Confidence string
	Regex      *regexp.Regexp
}

// Catalog groups the secret-shape patterns, the code-risk patterns and the
// sensitive filename list. It is pure data: adding a provider means adding
// one entry here, nothing else changes.
type Catalog struct {
	Secrets        []Pattern
	Code           []Pattern
	SensitiveFiles []string
}

func pattern(name string, confidence string, expr string) Pattern {
	return Pattern{Name: name, Confidence: confidence, Regex: regexp.MustCompile(expr)}
}

var defaultCatalog = &Catalog{
	Secrets: []Pattern{
		pattern("OpenAI", ConfidenceHigh, `sk-[a-zA-Z0-9]{48}`),
		pattern("Anthropic", ConfidenceHigh, `sk-ant-[a-zA-Z0-9]{32}`),
		// Cohere, AI21 and Azure OpenAI keys have no distinctive prefix.
		// These match arbitrary alphanumeric/hex runs of the right length.
		pattern("Cohere", ConfidenceLow, `[a-zA-Z0-9]{40}`),
		pattern("AI21", ConfidenceLow, `[a-zA-Z0-9]{32}`),
		pattern("Google AI", ConfidenceHigh, `AIza[0-9A-Za-z\-_]{35}`),
		pattern("Azure OpenAI", ConfidenceLow, `[0-9a-f]{32}`),
		pattern("Hugging Face", ConfidenceHigh, `hf_[a-zA-Z0-9]{34}`),
	},
	Code: []Pattern{
		pattern("API Calls", ConfidenceHigh, `\.(create|generate|complete|predict)\(`),
		pattern("Debug Mode", ConfidenceHigh, `(?i)debug\s*[:=]\s*true`),
		pattern("Hardcoded Credentials", ConfidenceLow, `(?i)(password|secret|key|token|auth)`),
	},
	SensitiveFiles: []string{
		".env",
		"config.json",
		"settings.json",
		"credentials.json",
		"secrets.json",
	},
}

// Default returns the built-in catalog. Callers must treat it as read-only.
func Default() *Catalog {
	return defaultCatalog
}

// WithConfidence returns a copy of the catalog keeping only patterns whose
// confidence is in the filter. An empty filter keeps everything.
func (c *Catalog) WithConfidence(filter []string) *Catalog {
	if len(filter) == 0 {
		return c
	}
	filtered := &Catalog{SensitiveFiles: c.SensitiveFiles}
	for _, p := range c.Secrets {
		if slices.Contains(filter, p.Confidence) {
			filtered.Secrets = append(filtered.Secrets, p)
		}
	}
	for _, p := range c.Code {
		if slices.Contains(filter, p.Confidence) {
			filtered.Code = append(filtered.Code, p)
		}
	}
	return filtered
}

// Extend returns a copy of the catalog with additional secret patterns
// appended, typically loaded from a user-supplied rules file.
func (c *Catalog) Extend(extra []Pattern) *Catalog {
	if len(extra) == 0 {
		return c
	}
	return &Catalog{
		Secrets:        append(append(make([]Pattern, 0, len(c.Secrets)+len(extra)), c.Secrets...), extra...),
		Code:           c.Code,
		SensitiveFiles: c.SensitiveFiles,
	}
}
