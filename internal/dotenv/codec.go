package dotenv

import (
	"regexp"
	"sort"
	"strings"
)

// SecretMap maps variable names to their string values.
type SecretMap map[string]string

// Keys returns the variable names in lexical order.
func (m SecretMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// lineRegex matches `KEY = value`; the key is word characters, dots and hyphens.
var lineRegex = regexp.MustCompile(`^\s*([\w.-]+)\s*=\s*(.*)?\s*$`)

// Parse reads KEY=VALUE lines. Lines that do not match are skipped, and a
// later duplicate key overwrites an earlier one.
func Parse(content string) SecretMap {
	secrets := SecretMap{}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		match := lineRegex.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		secrets[match[1]] = normalizeValue(match[2])
	}

	return secrets
}

func normalizeValue(value string) string {
	// An unquoted value loses everything from the first # on.
	if strings.Contains(value, "#") && !strings.ContainsAny(value, `"'`) {
		value = strings.TrimRight(value[:strings.Index(value, "#")], " \t")
	}
	return unquote(value)
}

// unquote strips exactly one layer of matching quotes. A closing quote may be
// followed by whitespace and an inline comment: `"abc#123" # note` yields abc#123.
// A lone quote character counts as both opening and closing and yields "".
func unquote(value string) string {
	if value == `"` || value == "'" {
		return ""
	}
	if len(value) < 2 {
		return value
	}
	q := value[0]
	if q != '"' && q != '\'' {
		return value
	}
	if value[len(value)-1] == q {
		return value[1 : len(value)-1]
	}

	end := strings.IndexByte(value[1:], q)
	if end < 0 {
		return value
	}
	end++
	rest := strings.TrimSpace(value[end+1:])
	if rest == "" || strings.HasPrefix(rest, "#") {
		return value[1:end]
	}
	return value
}

// Serialize writes one KEY=VALUE line per entry, sorted by key, joined by
// newlines. Values are written verbatim: no quoting or escaping.
func Serialize(m SecretMap) string {
	lines := make([]string, 0, len(m))
	for _, k := range m.Keys() {
		lines = append(lines, k+"="+m[k])
	}
	return strings.Join(lines, "\n")
}
