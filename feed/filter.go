package feed

import "strings"

// Filter is the relevance gate: a recall-biased substring test against a
// configured phrase vocabulary. False positives are acceptable; losing a
// relevant posting is the failure mode to avoid, so there is no stemming and
// no negation.
type Filter struct {
	phrases []string
}

// NewFilter parses a comma-separated phrase vocabulary. Phrases are trimmed
// and lowercased; empties are dropped; first-seen order is preserved.
func NewFilter(vocabulary string) *Filter {
	var phrases []string
	for _, raw := range strings.Split(vocabulary, ",") {
		phrase := strings.ToLower(strings.TrimSpace(raw))
		if phrase != "" {
			phrases = append(phrases, phrase)
		}
	}
	return &Filter{phrases: phrases}
}

// Match reports whether any vocabulary phrase appears in the lowercased
// concatenation of title, company, and description. Matching short-circuits
// on the first hit. An empty vocabulary matches nothing.
func (f *Filter) Match(title, company, description string) bool {
	haystack := strings.ToLower(title + " " + company + " " + description)
	for _, phrase := range f.phrases {
		if strings.Contains(haystack, phrase) {
			return true
		}
	}
	return false
}

// Size returns the number of vocabulary phrases.
func (f *Filter) Size() int {
	return len(f.phrases)
}
