package normalise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_LineEndings(t *testing.T) {
	assert.Equal(t, "one\ntwo\nthree", Normalize("one\r\ntwo\rthree"))
}

func TestNormalize_InvisibleUnicode(t *testing.T) {
	assert.Equal(t, "a b", Normalize("a\u00a0b"))
	assert.Equal(t, "ab", Normalize("a\u200bb"))
	assert.Equal(t, "ab", Normalize("\ufeffab"))
}

func TestNormalize_DashVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"en dash", "Level 1–7", "Level 1-7"},
		{"em dash", "Factor 3 — Guidelines", "Factor 3 - Guidelines"},
		{"horizontal bar", "9―11", "9-11"},
		{"minus sign", "GS−12", "GS-12"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.input))
		})
	}
}

func TestNormalize_FusedTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "factor number fusion",
			input: "Factor1 - Knowledge Required",
			want:  "Factor 1 - Knowledge Required",
		},
		{
			name:  "factor sub-letter fusion",
			input: "Factor4A - Personal Contacts",
			want:  "Factor 4A - Personal Contacts",
		},
		{
			name:  "points fusion",
			input: "Total Points: 1250Points",
			want:  "Total Points: 1250 Points",
		},
		{
			name:  "level digits absorbed the points",
			input: "Level 1-71250, 0 Points",
			want:  "Level 1-7, 1250 Points",
		},
		{
			name:  "level fusion without trailing points clause",
			input: "Level 3-2275 awarded",
			want:  "Level 3-2, 275 Points awarded",
		},
		{
			name:  "already separated text untouched",
			input: "Factor 1 - Knowledge Level 1-7, 1250 Points",
			want:  "Factor 1 - Knowledge Level 1-7, 1250 Points",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.input))
		})
	}
}

func TestNormalize_Whitespace(t *testing.T) {
	assert.Equal(t, "line one\nline two", Normalize("line one   \nline two\t"))
	assert.Equal(t, "a\n\nb", Normalize("a\n\n\n\n\nb"))
}

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := "**HEADER**\r\nJob Series: GS–0301\n\n\n\nFactor3GuidelinesLevel3-2275Points\n"
	once := Normalize(raw)
	assert.Equal(t, once, Normalize(once))
}
