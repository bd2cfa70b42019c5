package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/format"
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/logging"
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/scanner/rules"
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/scanner/types"
)

// resolveLine returns the 1-based number of the first line containing the
// matched substring as a literal. Best effort: if the same substring occurs
// earlier in the blob by coincidence, the earlier line is reported. Falls
// back to line 1 when nothing matches.
func resolveLine(text string, match string) int {
	for i, line := range strings.Split(text, "\n") {
		if strings.Contains(line, match) {
			return i + 1
		}
	}
	return 1
}

var codeIssueDetails = map[string]struct {
	Issue          string
	Recommendation string
}{
	"API Calls": {
		Issue:          "AI API call in client-reachable code",
		Recommendation: "Route AI API calls through a backend so keys never ship to clients",
	},
	"Debug Mode": {
		Issue:          "Debug mode enabled",
		Recommendation: "Disable debug flags before deploying",
	},
	"Hardcoded Credentials": {
		Issue:          "Possible hardcoded credential keyword",
		Recommendation: "Keep credentials in environment variables or a secrets manager, not in source",
	},
}

// extractFindings runs the full catalog against one content unit and appends
// the resulting findings to the report. One finding per pattern per unit;
// repeated matches of the same pattern collapse into the first occurrence.
func extractFindings(unit types.ContentUnit, catalog *rules.Catalog, report *types.ScanReport) {
	report.ApiKeys = append(report.ApiKeys, extractAPIKeys(unit, catalog.Secrets)...)
	report.CodeIssues = append(report.CodeIssues, extractCodeIssues(unit, catalog.Code)...)
	report.SensitiveFiles = append(report.SensitiveFiles, extractSensitiveFiles(unit, catalog.SensitiveFiles)...)
}

func extractAPIKeys(unit types.ContentUnit, patterns []rules.Pattern) []types.ApiKeyFinding {
	var findings []types.ApiKeyFinding
	for _, p := range patterns {
		// Secret patterns always run against the raw unit text, for URL
		// scans that is the unparsed page body.
		match := p.Regex.FindString(unit.Text)
		if match == "" {
			continue
		}
		line := resolveLine(unit.Text, match)
		findings = append(findings, types.ApiKeyFinding{
			File:           unit.Path,
			Service:        p.Name,
			Line:           line,
			Issue:          fmt.Sprintf("Potential %s API key exposed", p.Name),
			Recommendation: "Remove the key, load it from an environment variable or a secrets manager, and rotate it",
		})

		src := logging.FindingSourceFile
		if unit.Remote {
			src = logging.FindingSourcePage
		}
		logging.Hit().
			Source(src).
			Str("service", p.Name).
			Str("confidence", p.Confidence).
			Str("file", unit.Path).
			Int("line", line).
			Str("value", format.MaskSecret(format.FirstLine(match))).
			Msg("API key")
	}
	return findings
}

func extractCodeIssues(unit types.ContentUnit, patterns []rules.Pattern) []types.CodeIssueFinding {
	// URL scans run the code-risk pass against the concatenated inline
	// script blocks only, never the raw page. Directory scans use the file
	// text directly.
	scanText := unit.Text
	src := logging.FindingSourceFile
	if unit.Remote {
		scanText = unit.ScriptText
		src = logging.FindingSourceScript
	}
	if scanText == "" {
		return nil
	}

	var findings []types.CodeIssueFinding
	for _, p := range patterns {
		match := p.Regex.FindString(scanText)
		if match == "" {
			continue
		}
		line := resolveLine(scanText, match)
		details, ok := codeIssueDetails[p.Name]
		if !ok {
			details.Issue = fmt.Sprintf("Risky pattern %q detected", p.Name)
			details.Recommendation = "Review whether this belongs in shipped code"
		}
		findings = append(findings, types.CodeIssueFinding{
			File:           unit.Path,
			Line:           line,
			Pattern:        p.Name,
			Issue:          details.Issue,
			Recommendation: details.Recommendation,
		})

		logging.Hit().
			Source(src).
			Str("pattern", p.Name).
			Str("file", unit.Path).
			Int("line", line).
			Msg("Code issue")
	}
	return findings
}

func extractSensitiveFiles(unit types.ContentUnit, filenames []string) []types.SensitiveFileFinding {
	var findings []types.SensitiveFileFinding
	base := filepath.Base(unit.Path)
	for _, name := range filenames {
		matched := false
		if unit.Remote {
			// For pages the filename check is plain containment in the
			// body, references to such files are worth surfacing too.
			matched = format.ContainsI(unit.Text, name)
		} else {
			matched = strings.EqualFold(base, name)
		}
		if !matched {
			continue
		}
		findings = append(findings, types.SensitiveFileFinding{
			File:           unit.Path,
			Line:           nil,
			Issue:          fmt.Sprintf("Sensitive file %s exposed", name),
			Recommendation: "Keep configuration with secrets out of public trees and add it to .gitignore",
		})

		logging.Hit().
			Source(logging.FindingSourceFilename).
			Str("name", name).
			Str("file", unit.Path).
			Msg("Sensitive file")
	}
	return findings
}
