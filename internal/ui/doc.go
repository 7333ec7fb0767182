// Package ui provides semantic text formatting and table rendering for CLI output.
//
// Formatters render content (code, paths, tiers, errors) appropriately for
// the terminal. When colors are available, content is colorized. When
// NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations (backticks, quotes, brackets) are used instead.
//
// # Semantic Formatters
//
//	ui.Code.Sprint("edk link")              // Commands
//	ui.Path.Sprint(".envdock.json")         // File paths
//	ui.Tier("prod")                         // Environment tiers, upper-cased
//	ui.Success.Sprint("✓")                  // Success indicators
//	ui.Error.Sprint("✗")                    // Error indicators
//	ui.Highlight.Sprint("user@example.com") // User values
//	ui.Muted.Sprint("archived")             // De-emphasized text
//
// # Tables
//
// Listings (history, team, tokens, versions) are rendered with NewTable,
// a thin wrapper around lipgloss/table that drops borders and colors when
// NO_COLOR is set.
package ui
