package content

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/eringen/folio/markdown"
)

// DefaultSummaryLength is the rune budget for derived summaries.
const DefaultSummaryLength = 160

// Ellipsis marks a truncated excerpt.
const Ellipsis = "…"

// BodyExcerpt reduces Markdown body to plain text and truncates it to limit runes.
func BodyExcerpt(body string, limit int) string {
	return Excerpt(markdown.PlainText(body), limit)
}

// Excerpt collapses whitespace in text and truncates it to at most limit
// runes on a word boundary, appending Ellipsis when anything was cut.
// A first word longer than limit is cut mid-word. limit <= 0 disables truncation.
func Excerpt(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	cut := runes[:limit]
	if !unicode.IsSpace(runes[limit]) {
		if i := lastSpace(cut); i > 0 {
			cut = cut[:i]
		}
	}
	out := strings.TrimRightFunc(string(cut), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	if out == "" {
		out = string(runes[:limit])
	}
	return out + Ellipsis
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}
