package config

import (
	"fmt"
	"strings"
)

// Parse converts config file lines into a key/value map.
// Lines are `key=value`; blank lines and `#` comments are ignored.
// Values may be double-quoted to preserve surrounding whitespace.
func Parse(lines []string) (map[string]string, error) {
	cfg := make(map[string]string)

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		idx := strings.Index(trimmed, "=")
		if idx <= 0 {
			return nil, fmt.Errorf("config: invalid line %d: %q", i+1, line)
		}

		key := strings.TrimSpace(trimmed[:idx])
		value := strings.TrimSpace(trimmed[idx+1:])
		value = unquote(value)

		cfg[key] = value
	}

	return cfg, nil
}

// Set updates or appends `key=value` in the given lines, returning the new
// lines and whether an existing entry was replaced.
func Set(lines []string, key, value string) ([]string, bool) {
	if strings.Contains(value, " ") {
		value = "\"" + value + "\""
	}
	entry := key + "=" + value

	for i, line := range lines {
		if lineHasKey(line, key) {
			lines[i] = entry
			return lines, true
		}
		// Uncomment a `# key=` placeholder left by the default template
		if lineHasKey(strings.TrimPrefix(strings.TrimSpace(line), "# "), key) &&
			strings.HasPrefix(strings.TrimSpace(line), "#") {
			lines[i] = entry
			return lines, true
		}
	}

	return append(lines, entry), false
}

// Unset removes the entry for key, returning the new lines and whether an
// entry was removed.
func Unset(lines []string, key string) ([]string, bool) {
	for i, line := range lines {
		if lineHasKey(line, key) {
			return append(lines[:i], lines[i+1:]...), true
		}
	}
	return lines, false
}

func lineHasKey(line, key string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return false
	}
	idx := strings.Index(trimmed, "=")
	if idx <= 0 {
		return false
	}
	return strings.TrimSpace(trimmed[:idx]) == key
}

func unquote(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, "\"") && strings.HasSuffix(v, "\"") {
		return v[1 : len(v)-1]
	}
	return v
}
