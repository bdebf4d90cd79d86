package enhance

import (
	"strings"

	"github.com/jaytaylor/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// PlainText renders feed markup to readable plain text. Rendering failures
// fall back to stripping every tag, so the result is always usable.
func PlainText(markup string) string {
	text, err := html2text.FromString(markup, html2text.Options{TextOnly: true})
	if err != nil {
		text = strictPolicy.Sanitize(markup)
	}
	return strings.TrimSpace(text)
}

// TruncateWords keeps roughly the first n words of text, appending an
// ellipsis when anything was cut.
func TruncateWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + "…"
}

// Paragraphs splits plain text into non-empty paragraphs.
func Paragraphs(text string) []string {
	var paragraphs []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}
