package rules

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

func secretPattern(t *testing.T, name string) Pattern {
	t.Helper()
	for _, p := range Default().Secrets {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("no secret pattern named %q", name)
	return Pattern{}
}

func TestSecretPatterns(t *testing.T) {
	tests := []struct {
		name    string
		service string
		text    string
		matches bool
	}{
		{name: "OpenAI key", service: "OpenAI", text: "OPENAI_KEY=sk-" + strings.Repeat("a", 48), matches: true},
		{name: "OpenAI key too short", service: "OpenAI", text: "sk-" + strings.Repeat("a", 20), matches: false},
		{name: "Anthropic key", service: "Anthropic", text: "sk-ant-" + strings.Repeat("b", 32), matches: true},
		{name: "Google AI key", service: "Google AI", text: "AIza" + strings.Repeat("c", 35), matches: true},
		{name: "Hugging Face key", service: "Hugging Face", text: "hf_" + strings.Repeat("d", 34), matches: true},
		{name: "Azure hex run", service: "Azure OpenAI", text: strings.Repeat("0f", 16), matches: true},
		{name: "Azure uppercase hex does not match", service: "Azure OpenAI", text: strings.Repeat("0F", 16), matches: false},
		{name: "Cohere generic 40 alnum", service: "Cohere", text: strings.Repeat("x", 40), matches: true},
		{name: "AI21 generic 32 alnum", service: "AI21", text: strings.Repeat("y", 32), matches: true},
		{name: "plain text", service: "OpenAI", text: "nothing to see here", matches: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := secretPattern(t, tt.service)
			assert.Equal(t, tt.matches, p.Regex.MatchString(tt.text))
		})
	}
}

func TestCodePatterns(t *testing.T) {
	byName := map[string]Pattern{}
	for _, p := range Default().Code {
		byName[p.Name] = p
	}

	assert.True(t, byName["API Calls"].Regex.MatchString(`openai.chat.completions.create({model: "gpt-4"})`))
	assert.True(t, byName["API Calls"].Regex.MatchString(`model.predict(input)`))
	assert.False(t, byName["API Calls"].Regex.MatchString(`createWidget()`))

	assert.True(t, byName["Debug Mode"].Regex.MatchString(`debug: true`))
	assert.True(t, byName["Debug Mode"].Regex.MatchString(`DEBUG = true`))
	assert.False(t, byName["Debug Mode"].Regex.MatchString(`debug: false`))

	assert.True(t, byName["Hardcoded Credentials"].Regex.MatchString(`const PASSWORD = "hunter2"`))
	assert.True(t, byName["Hardcoded Credentials"].Regex.MatchString(`authToken`))
	assert.False(t, byName["Hardcoded Credentials"].Regex.MatchString(`const greeting = "hello"`))
}

func TestBroadPatternsAreLowConfidence(t *testing.T) {
	for _, p := range Default().Secrets {
		switch p.Name {
		case "Cohere", "AI21", "Azure OpenAI":
			assert.Equal(t, ConfidenceLow, p.Confidence, p.Name)
		default:
			assert.Equal(t, ConfidenceHigh, p.Confidence, p.Name)
		}
	}
}

func TestWithConfidence(t *testing.T) {
	t.Run("empty filter keeps everything", func(t *testing.T) {
		c := Default().WithConfidence(nil)
		assert.Len(t, c.Secrets, len(Default().Secrets))
		assert.Len(t, c.Code, len(Default().Code))
	})

	t.Run("high filter drops broad patterns", func(t *testing.T) {
		c := Default().WithConfidence([]string{ConfidenceHigh})
		for _, p := range c.Secrets {
			assert.Equal(t, ConfidenceHigh, p.Confidence)
		}
		assert.Len(t, c.Secrets, 4)
		assert.Len(t, c.Code, 2)
		// sensitive filenames are untouched by confidence filtering
		assert.Equal(t, Default().SensitiveFiles, c.SensitiveFiles)
	})
}

func TestExtendDoesNotMutateDefault(t *testing.T) {
	before := len(Default().Secrets)
	extended := Default().Extend([]Pattern{pattern("Custom", ConfidenceHigh, `custom-[0-9]{8}`)})

	assert.Len(t, extended.Secrets, before+1)
	assert.Len(t, Default().Secrets, before)
}

func TestSensitiveFiles(t *testing.T) {
	expected := []string{".env", "config.json", "settings.json", "credentials.json", "secrets.json"}
	assert.Equal(t, expected, Default().SensitiveFiles)
}
