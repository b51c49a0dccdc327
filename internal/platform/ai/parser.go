package ai

import (
	"encoding/json"
	"errors"
	"strings"
)

// StripJSONFences removes a surrounding markdown code fence from model
// output. Models fence JSON replies despite being told not to, so the
// parser tolerates ```json ... ``` and bare ``` ... ``` wrappers.
func StripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// DecodeStrict parses model output into target after stripping fences.
// Unknown fields are rejected so schema drift surfaces as an error
// instead of silently dropping data.
func DecodeStrict(raw string, target any) error {
	cleaned := StripJSONFences(raw)
	if cleaned == "" {
		return errors.New("empty model output")
	}
	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return errors.New("invalid model JSON output")
	}
	return nil
}
