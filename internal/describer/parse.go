package describer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripCodeFences removes a wrapping ``` block if the model added one
// despite instructions.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop an optional language tag on the fence line.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		first := strings.TrimSpace(s[:i])
		if len(first) <= 12 && !strings.ContainsAny(first, "{}<") {
			s = s[i+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseSection extracts the JSON object from a model response, tolerating
// fences and stray prose around the braces.
func parseSection(raw string) (Section, error) {
	txt := StripCodeFences(raw)

	var sec Section
	if err := json.Unmarshal([]byte(txt), &sec); err == nil {
		return sec, nil
	}

	// Fall back to the widest brace window.
	start := strings.IndexByte(txt, '{')
	end := strings.LastIndexByte(txt, '}')
	if start < 0 || end <= start {
		return Section{}, fmt.Errorf("no JSON object in response")
	}
	if err := json.Unmarshal([]byte(txt[start:end+1]), &sec); err != nil {
		return Section{}, fmt.Errorf("bad JSON in response: %w", err)
	}
	return sec, nil
}
