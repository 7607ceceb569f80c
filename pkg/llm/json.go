package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSON locates the JSON payload inside a free-form model
// response: the first balanced {...} or [...] region that parses as
// valid JSON. Returns false when no valid payload exists; callers then
// fall back to their shape-specific degraded result.
func ExtractJSON(response string) (string, bool) {
	objStart := strings.IndexByte(response, '{')
	arrStart := strings.IndexByte(response, '[')

	if objStart >= 0 && (arrStart < 0 || objStart < arrStart) {
		if payload, ok := extractBalanced(response, '{', '}'); ok && json.Valid([]byte(payload)) {
			return payload, true
		}
	}

	if arrStart >= 0 {
		if payload, ok := extractBalanced(response, '[', ']'); ok && json.Valid([]byte(payload)) {
			return payload, true
		}
	}

	trimmed := strings.TrimSpace(response)
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		return trimmed, true
	}

	return "", false
}

// extractBalanced returns the first balanced region delimited by
// openChar/closeChar, tracking nesting depth and skipping brackets
// inside string literals.
func extractBalanced(s string, openChar, closeChar byte) (string, bool) {
	start := strings.IndexByte(s, openChar)
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case openChar:
			depth++
		case closeChar:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
