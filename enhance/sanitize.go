package enhance

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// bodyPolicy is the whitelist for posting bodies: a small set of semantic
// tags, href on links, and nothing else. Script-bearing elements lose their
// content entirely rather than leaking it as text.
var bodyPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("h3", "p", "ul", "ol", "li", "strong", "em", "br")
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.RequireNoFollowOnLinks(true)
	p.SkipElementsContent("script", "style", "iframe", "object", "embed", "noscript", "head", "title")
	return p
}()

// documentWrapper matches doctype/html/head/body/meta/title scaffolding an AI
// or a feed author might wrap a fragment in.
var documentWrapper = regexp.MustCompile(`(?is)<!doctype[^>]*>|</?(?:html|head|body)[^>]*>|<meta[^>]*>|<title[^>]*>.*?</title>`)

// SanitizeBody reduces arbitrary markup to the posting body whitelist. It
// strips script/iframe/object/embed/style/noscript content, event-handler
// attributes, javascript: URLs, and any document wrapper elements, then
// trims the result.
func SanitizeBody(markup string) string {
	markup = documentWrapper.ReplaceAllString(markup, "")
	return strings.TrimSpace(bodyPolicy.Sanitize(markup))
}
