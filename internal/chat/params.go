package chat

import (
	"regexp"
	"strconv"
	"strings"
)

var paramPattern = regexp.MustCompile(`(\w+)\s*=\s*([^,]+)`)

// ParseParams extracts tool arguments from a "k=v, k2=v2" parameter line.
func ParseParams(s string) map[string]any {
	params := make(map[string]any)
	for _, m := range paramPattern.FindAllStringSubmatch(s, -1) {
		params[m[1]] = CoerceValue(m[2])
	}
	return params
}

// CoerceValue converts a textual argument to the JSON type a tool schema
// most likely expects: int, then float, then bool, falling back to the
// trimmed string. Surrounding quotes are stripped from strings.
func CoerceValue(s string) any {
	s = strings.TrimSpace(s)

	if !strings.Contains(s, ".") {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return strings.Trim(s, `"'`)
}
