package service

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Telegram accepts only a small HTML subset and rejects the whole message
// on the first invalid tag. The model is prompted to answer inside that
// subset but regularly drifts into Markdown or invents tags, so every
// verdict is sanitized before sending.

var allowedTagPattern = regexp.MustCompile(`(?i)` +
	`(</?(?:b|strong|i|em|u|ins|s|strike|del|code|tg-spoiler)>)` +
	`|(<a\s+href="[^"]*">)` +
	`|(<a\s+href='[^']*'>)` +
	`|(</a>)` +
	`|(<pre(?:\s+language="[^"]*")?>)` +
	`|(</pre>)`)

var (
	headingPattern = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
	boldPattern    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern  = regexp.MustCompile(`\*([^*]+)\*`)
)

var balancedTags = []string{"b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "tg-spoiler"}

type tagPair struct {
	open  *regexp.Regexp
	close *regexp.Regexp
}

var tagPairs = func() map[string]tagPair {
	pairs := make(map[string]tagPair, len(balancedTags))
	for _, tag := range balancedTags {
		pairs[tag] = tagPair{
			open:  regexp.MustCompile(fmt.Sprintf(`(?i)<%s(?:\s[^>]*)?>`, tag)),
			close: regexp.MustCompile(fmt.Sprintf(`(?i)</%s>`, tag)),
		}
	}
	return pairs
}()

var (
	openAnchorPattern  = regexp.MustCompile(`(?i)<a\s`)
	closeAnchorPattern = regexp.MustCompile(`(?i)</a>`)
)

// SanitizeTelegramHTML reduces text to the HTML subset Telegram renders:
// allowed tags pass through, every other < > & is escaped, leftover
// Markdown is converted and unbalanced tags are repaired.
func SanitizeTelegramHTML(text string) string {
	var b strings.Builder
	last := 0
	for _, loc := range allowedTagPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			b.WriteString(html.EscapeString(text[last:loc[0]]))
		}
		b.WriteString(text[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(text) {
		b.WriteString(html.EscapeString(text[last:]))
	}
	result := b.String()

	// Markdown the model slipped in despite the prompt.
	result = headingPattern.ReplaceAllString(result, "<b>$1</b>")
	result = boldPattern.ReplaceAllString(result, "<b>$1</b>")
	result = italicPattern.ReplaceAllString(result, "<i>$1</i>")

	// Close tags left open, drop closers with no opener.
	for _, tag := range balancedTags {
		pair := tagPairs[tag]
		opens := len(pair.open.FindAllStringIndex(result, -1))
		closes := len(pair.close.FindAllStringIndex(result, -1))
		for i := 0; i < opens-closes; i++ {
			result += "</" + tag + ">"
		}
		if closes > opens {
			result = removeFirst(pair.close, result, closes-opens)
		}
	}

	opens := len(openAnchorPattern.FindAllStringIndex(result, -1))
	closes := len(closeAnchorPattern.FindAllStringIndex(result, -1))
	for i := 0; i < opens-closes; i++ {
		result += "</a>"
	}
	if closes > opens {
		result = removeFirst(closeAnchorPattern, result, closes-opens)
	}

	return result
}

func removeFirst(re *regexp.Regexp, s string, n int) string {
	for ; n > 0; n-- {
		loc := re.FindStringIndex(s)
		if loc == nil {
			break
		}
		s = s[:loc[0]] + s[loc[1]:]
	}
	return s
}
