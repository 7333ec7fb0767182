package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	text := fmt.Sprint(a...)
	if NoColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.Sprint(fmt.Sprintf(format, a...))
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// NoColor returns true if color output should be disabled.
func NoColor() bool {
	// https://no-color.org/
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

// Tier renders an environment tier the way every command announces its target.
func Tier(name string) string {
	return Environment.Sprint(strings.ToUpper(name))
}

// Semantic formatters for different types of CLI output.
var (
	// Code formats runnable commands, e.g. `edk link`.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats file paths such as .env or .envdock.json.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Flag formats CLI flags like --env.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	Info    = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight formats user values: emails, project names, token names.
	// Cyan with color, 'single quotes' without.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Environment formats tier names. Bold cyan with color, [brackets] without.
	Environment = Formatter{color.New(color.FgCyan, color.Bold), "[", "]"}

	// Secret formats a value the user must copy now, like a freshly issued CI token.
	Secret = Formatter{color.New(color.FgWhite, color.Bold), "", ""}

	// Muted formats de-emphasized or secondary text.
	// Gray with color, (parentheses) without.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)
