package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeJSON extracts the JSON payload of a model reply into result.
func decodeJSON(content string, result any) error {
	if err := json.Unmarshal([]byte(extractJSON(content)), result); err != nil {
		return fmt.Errorf("parsing JSON response: %w (content: %s)", err, content)
	}
	return nil
}

// extractJSON returns the JSON inside a reply that may wrap it in a fenced
// code block or surround it with prose.
func extractJSON(s string) string {
	for _, fence := range []string{"```json", "```"} {
		if block, ok := fenced(s, fence); ok {
			return block
		}
	}

	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return s
	}
	depth := 0
	for j := start; j < len(s); j++ {
		switch s[j] {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[start : j+1]
			}
		}
	}
	return s
}

func fenced(s, fence string) (string, bool) {
	idx := strings.Index(s, fence)
	if idx == -1 {
		return "", false
	}
	body := strings.TrimLeft(s[idx+len(fence):], "\r\n")
	end := strings.Index(body, "```")
	if end == -1 {
		return "", false
	}
	return strings.TrimRight(body[:end], "\r\n"), true
}
