package engine

import (
	"strings"
	"testing"

	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/scanner/rules"
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/scanner/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

var openAIKey = "sk-" + strings.Repeat("a", 48)

func highConfidenceCatalog() *rules.Catalog {
	return rules.Default().WithConfidence([]string{rules.ConfidenceHigh})
}

func TestResolveLine(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		match string
		want  int
	}{
		{name: "first line", text: "abc\ndef", match: "abc", want: 1},
		{name: "second line", text: "abc\ndef", match: "def", want: 2},
		{name: "first occurrence wins", text: "x\ntoken\ny\ntoken", match: "token", want: 2},
		{name: "no hit defaults to one", text: "abc\ndef", match: "zzz", want: 1},
		{name: "empty text", text: "", match: "zzz", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveLine(tt.text, tt.match))
		})
	}
}

func TestExtractAPIKeysOneFindingPerProvider(t *testing.T) {
	// two occurrences of the same provider key collapse into one finding
	// located at the first occurrence
	unit := types.ContentUnit{
		Path: "app.js",
		Text: "// config\nconst key = \"" + openAIKey + "\";\nconst backup = \"" + openAIKey + "\";\n",
	}

	findings := extractAPIKeys(unit, highConfidenceCatalog().Secrets)

	require.Len(t, findings, 1)
	assert.Equal(t, "OpenAI", findings[0].Service)
	assert.Equal(t, "app.js", findings[0].File)
	assert.Equal(t, 2, findings[0].Line)
	assert.NotEmpty(t, findings[0].Issue)
	assert.NotEmpty(t, findings[0].Recommendation)
}

func TestExtractCodeIssues(t *testing.T) {
	t.Run("local files scan their own text", func(t *testing.T) {
		unit := types.ContentUnit{
			Path: "main.py",
			Text: "import openai\nclient.completions.create(prompt)\nDEBUG = True\n",
		}

		findings := extractCodeIssues(unit, highConfidenceCatalog().Code)

		require.Len(t, findings, 2)
		assert.Equal(t, "API Calls", findings[0].Pattern)
		assert.Equal(t, 2, findings[0].Line)
		assert.Equal(t, "Debug Mode", findings[1].Pattern)
		assert.Equal(t, 3, findings[1].Line)
	})

	t.Run("remote units scan only inline script text", func(t *testing.T) {
		unit := types.ContentUnit{
			Path:       "https://example.com",
			Text:       "<p>model.generate( is mentioned in prose</p>",
			ScriptText: "",
			Remote:     true,
		}

		findings := extractCodeIssues(unit, highConfidenceCatalog().Code)
		assert.Empty(t, findings)
	})

	t.Run("remote script findings carry the page path", func(t *testing.T) {
		unit := types.ContentUnit{
			Path:       "https://example.com",
			Text:       "<html></html>",
			ScriptText: "const cfg = { debug: true };",
			Remote:     true,
		}

		findings := extractCodeIssues(unit, highConfidenceCatalog().Code)

		require.Len(t, findings, 1)
		assert.Equal(t, "Debug Mode", findings[0].Pattern)
		assert.Equal(t, "https://example.com", findings[0].File)
	})
}

func TestExtractSensitiveFiles(t *testing.T) {
	filenames := rules.Default().SensitiveFiles

	t.Run("local basename equality, case-insensitive", func(t *testing.T) {
		findings := extractSensitiveFiles(types.ContentUnit{Path: "config/Secrets.JSON"}, filenames)

		require.Len(t, findings, 1)
		assert.Equal(t, "config/Secrets.JSON", findings[0].File)
		assert.Nil(t, findings[0].Line)
	})

	t.Run("local partial name does not match", func(t *testing.T) {
		findings := extractSensitiveFiles(types.ContentUnit{Path: "my-secrets.json.bak"}, filenames)
		assert.Empty(t, findings)
	})

	t.Run("remote containment in page text", func(t *testing.T) {
		unit := types.ContentUnit{
			Path:   "https://example.com",
			Text:   `<a href="/static/credentials.json">download</a>`,
			Remote: true,
		}

		findings := extractSensitiveFiles(unit, filenames)

		require.Len(t, findings, 1)
		assert.Contains(t, findings[0].Issue, "credentials.json")
	})
}

func TestExtractFindingsAppendsToReport(t *testing.T) {
	report := types.NewScanReport("/project")
	unit := types.ContentUnit{
		Path: ".env",
		Text: "OPENAI_KEY=" + openAIKey + "\nDEBUG=true\n",
	}

	extractFindings(unit, highConfidenceCatalog(), report)
	report.Finalize()

	assert.Len(t, report.ApiKeys, 1)
	assert.Len(t, report.CodeIssues, 1)
	assert.Len(t, report.SensitiveFiles, 1)
	assert.Equal(t, 3, report.Summary.TotalIssues)
	assert.Equal(t, types.RiskMedium, report.Summary.RiskLevel)
}
