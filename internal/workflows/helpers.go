package workflows

import (
	"path/filepath"
	"strings"
)

// displayPath shows path relative to dir when it lives inside it.
func displayPath(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
