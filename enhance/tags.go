package enhance

import (
	"regexp"
	"strings"

	"github.com/poiesic/jobwire/core"
	"github.com/poiesic/jobwire/extract"
)

// professionVocabularies maps a profession to the keyword tags worth carrying
// on its postings. Each entry is (phrase to find, tag to emit); the phrase is
// matched as a lowercase substring. Unknown professions use the baseline.
var professionVocabularies = map[string][]vocabEntry{
	"chauffeur": {
		{"spl", "spl"},
		{"super lourd", "spl"},
		{"permis ce", "permis ce"},
		{"permis c", "permis c"},
		{"porteur", "porteur"},
		{"adr", "adr"},
		{"fimo", "fimo"},
		{"fco", "fco"},
		{"frigorifique", "frigorifique"},
		{"benne", "benne"},
		{"citerne", "citerne"},
		{"messagerie", "messagerie"},
		{"régional", "régional"},
		{"national", "national"},
		{"découch", "découchés"},
	},
	"cariste": {
		{"caces 1", "caces 1"},
		{"caces 3", "caces 3"},
		{"caces 5", "caces 5"},
		{"caces", "caces"},
		{"chariot", "chariot élévateur"},
		{"préparateur de commandes", "préparation de commandes"},
		{"entrepôt", "entrepôt"},
		{"magasinier", "magasinier"},
	},
}

// baselineVocabulary serves professions without a dedicated entry.
var baselineVocabulary = []vocabEntry{
	{"logistique", "logistique"},
	{"transport", "transport"},
	{"manutention", "manutention"},
	{"livraison", "livraison"},
}

type vocabEntry struct {
	phrase string
	tag    string
}

// facetPatterns emit a generic facet tag when its phrasing appears anywhere
// in the text. The remote facet reuses the extractor's phrase set.
var facetPatterns = []struct {
	pattern *regexp.Regexp
	tag     string
}{
	{regexp.MustCompile(`(?i)temps plein|full[ -]time|39\s*h|35\s*h`), "temps plein"},
	{regexp.MustCompile(`(?i)temps partiel|mi[ -]temps|part[ -]time`), "temps partiel"},
	{regexp.MustCompile(`(?i)\bcdi\b|permanent`), "cdi"},
	{regexp.MustCompile(`(?i)\bcdd\b|fixed[ -]term|int[ée]rim`), "cdd"},
}

// tagScanLimit caps how much description text feeds the keyword matcher.
const tagScanLimit = 1000

// ExtractTags derives a tag set from the posting text: profession-specific
// keywords, generic facets, and the profession name itself, normalized. The
// description is trimmed to its first stretch so vocabulary scans stay cheap.
func ExtractTags(title, company, plainText, profession string) []string {
	if len(plainText) > tagScanLimit {
		plainText = plainText[:tagScanLimit]
	}
	haystack := strings.ToLower(title + " " + company + " " + plainText)

	vocabulary, ok := professionVocabularies[profession]
	if !ok {
		vocabulary = baselineVocabulary
	}

	// The profession leads so the cap in NormalizeTags can never drop it.
	// Facets come before the vocabulary: contract form and hours are worth
	// more to a browsing reader than a ninth keyword.
	tags := []string{profession}
	for _, facet := range facetPatterns {
		if facet.pattern.MatchString(haystack) {
			tags = append(tags, facet.tag)
		}
	}
	if extract.Remote(haystack) {
		tags = append(tags, "télétravail")
	}
	for _, entry := range vocabulary {
		if strings.Contains(haystack, entry.phrase) {
			tags = append(tags, entry.tag)
		}
	}

	return core.NormalizeTags(tags)
}
