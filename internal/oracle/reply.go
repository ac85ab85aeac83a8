package oracle

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedReplyError reports oracle text that did not decode as JSON
// after fence stripping. The reason is safe to surface to callers; the
// raw reply is not, to avoid leaking prompt internals.
type MalformedReplyError struct {
	Reason string
}

func (e *MalformedReplyError) Error() string {
	return fmt.Sprintf("malformed oracle reply: %s", e.Reason)
}

// Decode strips an optional fenced-code-block wrapper from an oracle
// reply and decodes the remainder as a single JSON value. It removes at
// most one leading and one trailing fence line and never attempts
// heuristic repair of broken syntax; the repair path is a second oracle
// call, owned by the orchestrator.
func Decode(raw string) (any, error) {
	text := strings.TrimSpace(raw)
	text = stripFences(text)

	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, &MalformedReplyError{Reason: err.Error()}
	}
	return v, nil
}

// stripFences removes a leading "```" line (optionally with a language
// tag, e.g. "```json") and a matching trailing "```" line.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	rest, ok := strings.CutPrefix(text, "```")
	if !ok {
		return text
	}
	// Drop the rest of the opening fence line (language tag included).
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		rest = rest[idx+1:]
	} else {
		return text
	}
	rest = strings.TrimRight(rest, " \t\n")
	rest = strings.TrimSuffix(rest, "```")
	return strings.TrimSpace(rest)
}
