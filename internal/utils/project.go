package utils

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// EnvFileIgnored reports whether dir/.gitignore mentions .env. The second
// return value is false when there is no .gitignore at all, in which case no
// warning is shown.
func EnvFileIgnored(afs afero.Fs, dir string) (ignored bool, hasGitignore bool) {
	content, err := afero.ReadFile(afs, filepath.Join(dir, ".gitignore"))
	if err != nil {
		return false, false
	}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ".env") {
			return true, true
		}
	}
	return false, true
}
