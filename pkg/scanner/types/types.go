package types

import "time"

// RiskLevel is the coarse verdict derived from the total finding count.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// RiskLevelForCount maps a total issue count to its risk tier.
// 0 issues is LOW, 1-3 is MEDIUM, anything above is HIGH.
func RiskLevelForCount(totalIssues int) RiskLevel {
	switch {
	case totalIssues == 0:
		return RiskLow
	case totalIssues <= 3:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// ContentUnit is one blob of text subjected to pattern extraction: a file's
// contents during a directory scan, or a fetched page body during a URL scan.
type ContentUnit struct {
	// Path is the logical location of the content, a root-relative file
	// path or the fetched URL.
	Path string
	Text string
	// ScriptText holds concatenated inline script blocks for URL scans.
	// The code-risk pass runs against it instead of Text; empty for files.
	ScriptText string
	// Remote marks units produced by a URL fetch rather than a file read.
	Remote bool
}

// ApiKeyFinding reports a provider API key shape detected in a content unit.
type ApiKeyFinding struct {
	File           string `json:"file"`
	Service        string `json:"service"`
	Line           int    `json:"line"`
	Issue          string `json:"issue"`
	Recommendation string `json:"recommendation"`
}

// SensitiveFileFinding reports a sensitive filename. These findings are not
// line-addressable, Line is always null in the serialized report.
type SensitiveFileFinding struct {
	File           string `json:"file"`
	Line           *int   `json:"line"`
	Issue          string `json:"issue"`
	Recommendation string `json:"recommendation"`
}

// CodeIssueFinding reports a risky code shape such as a debug toggle or a
// hardcoded credential keyword.
type CodeIssueFinding struct {
	File           string `json:"file"`
	Line           int    `json:"line"`
	Pattern        string `json:"pattern"`
	Issue          string `json:"issue"`
	Recommendation string `json:"recommendation"`
}

// Summary aggregates counters across one whole scan invocation.
type Summary struct {
	Target            string    `json:"target"`
	TotalFilesScanned int       `json:"totalFilesScanned"`
	TotalIssues       int       `json:"totalIssues"`
	RiskLevel         RiskLevel `json:"riskLevel"`
	ScanStartedAt     time.Time `json:"scanStartedAt"`
	ScanCompletedAt   time.Time `json:"scanCompletedAt"`
}

// ScanReport is the assembled result of one scan. It is built once per
// invocation and never mutated after Finalize.
type ScanReport struct {
	ApiKeys        []ApiKeyFinding        `json:"apiKeys"`
	SensitiveFiles []SensitiveFileFinding `json:"sensitiveFiles"`
	CodeIssues     []CodeIssueFinding     `json:"codeIssues"`
	Summary        Summary                `json:"summary"`
}

// NewScanReport returns an empty report for the given target with the start
// timestamp already captured. Slices are non-nil so the report serializes
// with empty arrays instead of nulls.
func NewScanReport(target string) *ScanReport {
	return &ScanReport{
		ApiKeys:        []ApiKeyFinding{},
		SensitiveFiles: []SensitiveFileFinding{},
		CodeIssues:     []CodeIssueFinding{},
		Summary: Summary{
			Target:        target,
			ScanStartedAt: time.Now(),
		},
	}
}

// TotalIssues recomputes the issue count from the three finding slices.
// Summary.TotalIssues is never set independently of this.
func (r *ScanReport) TotalIssues() int {
	return len(r.ApiKeys) + len(r.SensitiveFiles) + len(r.CodeIssues)
}

// Finalize recomputes the derived summary fields and stamps the completion
// time. Call exactly once, after the last finding has been appended.
func (r *ScanReport) Finalize() {
	r.Summary.TotalIssues = r.TotalIssues()
	r.Summary.RiskLevel = RiskLevelForCount(r.Summary.TotalIssues)
	r.Summary.ScanCompletedAt = time.Now()
}

// Duration is the wall-clock time between scan start and completion.
func (r *ScanReport) Duration() time.Duration {
	return r.Summary.ScanCompletedAt.Sub(r.Summary.ScanStartedAt)
}
