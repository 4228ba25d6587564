package photo

import (
	"encoding/json"
	"strings"
)

// Views is the canonical ordering of product photo views. Upload and
// grading both walk this list so filenames and prompts stay stable.
var Views = []string{"front", "back", "detail", "label", "additional"}

// Decode normalizes the photo column into a view→URL map. The column
// historically held either a bare URL or a JSON object, so all three
// shapes must decode without error:
//
//   - JSON-object string → parsed map
//   - bare URL string    → {front: url}
//   - empty/null         → empty map
//
// Malformed JSON falls back to the bare-URL case rather than failing.
func Decode(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]string{}
	}

	if strings.HasPrefix(raw, "{") {
		var m map[string]string
		if err := json.Unmarshal([]byte(raw), &m); err == nil {
			if m == nil {
				return map[string]string{}
			}
			return m
		}
		return map[string]string{"front": raw}
	}

	return map[string]string{"front": raw}
}

// Encode serializes a view→URL map for the photo column.
func Encode(m map[string]string) string {
	if m == nil {
		m = map[string]string{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(b)
}
