package bot

import (
	"strings"
	"unicode/utf8"
)

// Telegram caps messages at 4096 characters; staying under 4000 bytes
// leaves room for formatting entities and is always within the cap.
const maxMessageLength = 4000

// splitMessage breaks text into chunks of at most limit bytes on line
// boundaries, so HTML tags and sentences are not cut mid-line. A single
// line longer than the limit is hard-split on rune boundaries.
// Whitespace-only chunks are dropped.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var (
		parts   []string
		current strings.Builder
	)
	flush := func() {
		if strings.TrimSpace(current.String()) != "" {
			parts = append(parts, current.String())
		}
		current.Reset()
	}

	for _, line := range splitLines(text) {
		if len(line) > limit {
			flush()
			for len(line) > limit {
				cut := limit
				for cut > 0 && !utf8.RuneStart(line[cut]) {
					cut--
				}
				if cut == 0 {
					cut = limit
				}
				parts = append(parts, line[:cut])
				line = line[cut:]
			}
			current.WriteString(line)
			continue
		}
		if current.Len()+len(line) > limit {
			flush()
		}
		current.WriteString(line)
	}
	flush()

	return parts
}

// splitLines splits text after every newline, keeping the newline with
// the line it terminates.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
