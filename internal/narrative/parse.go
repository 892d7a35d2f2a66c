package narrative

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StripCodeFences removes a surrounding Markdown code fence such as ```json ... ```
func StripCodeFences(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		// drop the language tag line
		if !strings.ContainsAny(t[:nl], "{[") {
			t = t[nl+1:]
		}
	}
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t)
}

// decodeJSON strips fences and decodes raw into out
func decodeJSON(raw string, out any) error {
	body := StripCodeFences(raw)
	if body == "" {
		return fmt.Errorf("empty response")
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// encodeJSON renders a fallback shape the way a model answer would look
func encodeJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
