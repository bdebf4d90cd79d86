package core

import (
	"strings"

	"github.com/gosimple/slug"
)

const (
	// MaxTags is the maximum number of tags kept per posting.
	MaxTags = 8

	// MaxSlugLength caps slug length in runes.
	MaxSlugLength = 120
)

// NormalizeTags cleans a tag list: trims whitespace, lowercases, drops
// empties, removes exact duplicates preserving first-seen order, and
// truncates to the first MaxTags survivors.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, MaxTags)
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}

// Slugify produces a URL-safe lowercase token capped at MaxSlugLength runes.
// Two different names may slugify identically; callers resolve such
// collisions with first-insert-wins semantics.
func Slugify(s string) string {
	out := slug.Make(s)
	runes := []rune(out)
	if len(runes) > MaxSlugLength {
		out = strings.Trim(string(runes[:MaxSlugLength]), "-")
	}
	return out
}

// PostingSlug derives the unique posting slug from title and company.
func PostingSlug(title, company string) string {
	return Slugify(title + " " + company)
}
