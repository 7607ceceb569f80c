// Package jsonutil contains tolerant JSON field readers for
// loosely-structured model output.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexibleString converts a json.RawMessage to a string, handling cases
// where LLMs return numbers or booleans instead of strings. Returns
// empty string for null/empty.
func FlexibleString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		return strVal
	}

	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		if numVal == float64(int64(numVal)) {
			return fmt.Sprintf("%d", int64(numVal))
		}
		return fmt.Sprintf("%g", numVal)
	}

	var boolVal bool
	if err := json.Unmarshal(raw, &boolVal); err == nil {
		return fmt.Sprintf("%t", boolVal)
	}

	return string(raw)
}

// FlexibleInt converts a json.RawMessage to an int, accepting numbers
// and numeric strings. Returns 0 for anything else.
func FlexibleInt(raw json.RawMessage) int {
	if len(raw) == 0 || string(raw) == "null" {
		return 0
	}

	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		return int(numVal)
	}

	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(strVal)); err == nil {
			return n
		}
	}

	return 0
}

// FlexibleStrings converts a json.RawMessage to a string slice,
// accepting an array of mixed scalar values or a single scalar.
// Empty elements are dropped. Returns nil for null/empty/unusable input.
func FlexibleStrings(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err == nil {
		out := make([]string, 0, len(elems))
		for _, e := range elems {
			if s := strings.TrimSpace(FlexibleString(e)); s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}

	if s := strings.TrimSpace(FlexibleString(raw)); s != "" {
		return []string{s}
	}
	return nil
}
