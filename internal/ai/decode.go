package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeJSONBlock extracts and decodes the first JSON object embedded in a
// model reply. Models wrap JSON in markdown fences or surround it with prose;
// both are stripped before decoding. Decoding is strict: a reply with no
// balanced object, or one that does not match dst, is an error rather than a
// zero value.
func decodeJSONBlock(text string, dst any) error {
	block, err := extractJSONObject(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(block), dst); err != nil {
		return fmt.Errorf("decode model reply: %w", err)
	}
	return nil
}

func extractJSONObject(text string) (string, error) {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```json"); idx >= 0 {
		text = text[idx+len("```json"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
	} else if idx := strings.Index(text, "```"); idx >= 0 {
		text = text[idx+len("```"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
	}

	start := strings.Index(text, "{")
	if start < 0 {
		return "", fmt.Errorf("model reply contains no JSON object")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], nil
				}
			}
		}
	}
	return "", fmt.Errorf("model reply contains an unterminated JSON object")
}
