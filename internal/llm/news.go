package llm

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// ParseNews decodes a news payload. Anything that is not a JSON array of
// items yields an empty list; items without a headline are skipped.
func ParseNews(raw []byte) []NewsItem {
	var items []NewsItem
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Warn("discarding malformed market news", "error", err)
		return []NewsItem{}
	}

	out := make([]NewsItem, 0, len(items))

	for _, it := range items {
		if strings.TrimSpace(it.Headline) == "" {
			continue
		}

		out = append(out, it)
	}

	return out
}

// CleanJSON strips markdown fences and surrounding prose from a model answer
// that should have been a bare JSON array.
func CleanJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		idx := strings.Index(s, "\n")
		if idx == -1 {
			return s
		}

		s = strings.TrimSpace(s[idx+1:])
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
