package formatting

import "strings"

const sentenceTerminators = ".!?"

// Truncate cuts s to at most limit bytes without splitting a UTF-8 sequence.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// TruncateSentence cuts s to at most budget bytes. When a sentence terminator
// falls within the final 20% of the window the result ends on it, otherwise
// the result is a hard cut at the budget.
func TruncateSentence(s string, budget int) string {
	if len(s) <= budget {
		return s
	}

	window := Truncate(s, budget)
	floor := budget - budget/5

	if idx := strings.LastIndexAny(window, sentenceTerminators); idx >= floor {
		return window[:idx+1]
	}

	return window
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
