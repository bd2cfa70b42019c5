package format

import "strings"

func ContainsI(a string, b string) bool {
	return strings.Contains(
		strings.ToLower(a),
		strings.ToLower(b),
	)
}

// MaskSecret keeps the first few characters of a matched secret and blanks
// the rest, so hit logs never contain the full credential.
func MaskSecret(secret string) string {
	const visible = 6
	if len(secret) <= visible {
		return strings.Repeat("*", len(secret))
	}
	return secret[:visible] + strings.Repeat("*", len(secret)-visible)
}

// FirstLine truncates multi-line matched text to its first line for
// single-line log output.
func FirstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
