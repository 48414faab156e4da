package md

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"no escapes here",
		`\*star\* and \_under\_`,
		`trailing backslash \`,
		`double \\ backslash`,
		`not escapable \q`,
		"user text with \uE000 and \uE005 runes",
		"\uE000\\*",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			masked := Mask(input)
			assert.Equal(t, input, unmaskSource(masked))
		})
	}
}

func TestMask_HidesMarkers(t *testing.T) {
	masked := Mask(`\*a\* \[b\] \` + "`")
	assert.NotContains(t, masked, "*")
	assert.NotContains(t, masked, "[")
	assert.NotContains(t, masked, "]")
	assert.NotContains(t, masked, "`")
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"escaped star", `\*x\*`, "*x*"},
		{"escaped backslash", `\\`, `\`},
		{"non-escapable keeps backslash", `a\b`, `a\b`},
		{"escaped hash", `\# not a heading`, "# not a heading"},
		{"escaped backticks", "\\`\\`\\`", "```"},
		{"private use text untouched", "a\uE001b", "a\uE001b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Unescape(tt.input))
		})
	}
}

func TestEscapeMarkup(t *testing.T) {
	inputs := []string{"plain", "a*b_c~d`e[f]g", `back\slash`, `\*`, "uni ✓ *"}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			escaped := EscapeMarkup(input)
			assert.Equal(t, input, Unescape(escaped))

			spans := ParseSpans(escaped)
			assert.Len(t, spans, 1)
			assert.Equal(t, input, spans[0].Text)
		})
	}
}
