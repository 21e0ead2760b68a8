package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed is returned when content cannot be decoded as JSON after
// every cleanup strategy has been applied.
var ErrParseFailed = errors.New("failed to parse response")

var (
	thinkBlockRegex = regexp.MustCompile(`(?is)<think>.*?</think>`)
	jsonBlockRegex  = regexp.MustCompile(`(?s)` + "```" + `(?:json)?\s*\n?(.*?)\n?` + "```")
	braceSpanRegex  = regexp.MustCompile(`(?s)\{.*\}`)
)

// Clean removes <think>...</think> reasoning blocks and a leading/trailing
// markdown fence (optionally labeled json) from model output.
func Clean(content string) string {
	content = thinkBlockRegex.ReplaceAllString(content, "")
	content = strings.TrimSpace(content)

	if rest, ok := strings.CutPrefix(content, "```"); ok {
		rest = strings.TrimPrefix(rest, "json")
		rest = strings.TrimPrefix(rest, "JSON")
		content = rest
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")

	return strings.TrimSpace(content)
}

// Parse attempts to unmarshal model output as JSON into T.
// Strategies in order: cleaned content, a fenced block anywhere in the text,
// and the greedy span from the first '{' to the last '}'.
// Returns ErrParseFailed if every attempt fails.
func Parse[T any](content string) (T, error) {
	var result T
	cleaned := Clean(content)

	if err := json.Unmarshal([]byte(cleaned), &result); err == nil {
		return result, nil
	}

	if matches := jsonBlockRegex.FindStringSubmatch(cleaned); len(matches) >= 2 {
		block := strings.TrimSpace(matches[1])
		if err := json.Unmarshal([]byte(block), &result); err == nil {
			return result, nil
		}
	}

	if span := braceSpanRegex.FindString(cleaned); span != "" {
		if err := json.Unmarshal([]byte(span), &result); err == nil {
			return result, nil
		}
	}

	return result, fmt.Errorf("%w: %s", ErrParseFailed, Truncate(content, 200))
}
