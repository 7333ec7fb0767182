package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatterWithColor(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	color.NoColor = false
	defer func() { color.NoColor = true }()

	result := Code.Sprint("edk link")
	if strings.Contains(result, "`") {
		t.Errorf("Code.Sprint should not contain backticks when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Code.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
	}
}

func TestFormatterWithNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "edk pull", "`edk pull`"},
		{"Path has no decoration", Path, ".envdock.json", ".envdock.json"},
		{"Flag has no decoration", Flag, "--env", "--env"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Warning has no decoration", Warning, "⚠", "⚠"},
		{"Info has no decoration", Info, "→", "→"},
		{"Highlight adds quotes", Highlight, "dev@example.com", "'dev@example.com'"},
		{"Environment adds brackets", Environment, "STAGING", "[STAGING]"},
		{"Secret has no decoration", Secret, "edk_ci_123", "edk_ci_123"},
		{"Muted adds parentheses", Muted, "archived", "(archived)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.formatter.Sprint(tt.input)
			if got != tt.want {
				t.Errorf("%s.Sprint(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
			}
		})
	}
}

func TestTierUppercases(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if got := Tier("prod"); got != "[PROD]" {
		t.Errorf("Tier(prod) = %q, want [PROD]", got)
	}
}

func TestSprintfMatchesSprint(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if got := Highlight.Sprintf("%s@%s", "ci", "example.com"); got != "'ci@example.com'" {
		t.Errorf("Highlight.Sprintf = %q", got)
	}
}

func TestEnsureNewline(t *testing.T) {
	tests := map[string]string{
		"":       "\n",
		"done":   "done\n",
		"done\n": "done\n",
		"a\nb":   "a\nb\n",
	}
	for in, want := range tests {
		if got := EnsureNewline(in); got != want {
			t.Errorf("EnsureNewline(%q) = %q, want %q", in, got, want)
		}
	}
}
