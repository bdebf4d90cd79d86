package enhance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTagsProfessionVocabulary(t *testing.T) {
	tags := ExtractTags("Chauffeur SPL", "Transports Nord", "Permis CE et ADR exigés, tournée en frigorifique.", "chauffeur")
	assert.Contains(t, tags, "chauffeur")
	assert.Contains(t, tags, "spl")
	assert.Contains(t, tags, "permis ce")
	assert.Contains(t, tags, "adr")
	assert.Contains(t, tags, "frigorifique")
}

func TestExtractTagsBaselineForUnknownProfession(t *testing.T) {
	tags := ExtractTags("Agent logistique", "", "Manutention et livraison en entrepôt.", "soudeur")
	assert.Contains(t, tags, "soudeur")
	assert.Contains(t, tags, "logistique")
	assert.Contains(t, tags, "manutention")
	assert.Contains(t, tags, "livraison")
}

func TestExtractTagsFacets(t *testing.T) {
	tags := ExtractTags("Cariste", "", "CDI à temps plein, télétravail impossible.", "cariste")
	assert.Contains(t, tags, "cdi")
	assert.Contains(t, tags, "temps plein")
	assert.Contains(t, tags, "télétravail")
}

func TestExtractTagsFacetsSurviveDenseVocabulary(t *testing.T) {
	// Enough vocabulary hits to fill the cap on their own: the contract and
	// hours facets must still make the cut, at the vocabulary's expense.
	dense := "SPL permis ce porteur ADR FIMO frigorifique benne citerne en CDI à temps plein"
	tags := ExtractTags("Chauffeur", "", dense, "chauffeur")
	assert.LessOrEqual(t, len(tags), 8)
	assert.Contains(t, tags, "chauffeur")
	assert.Contains(t, tags, "cdi")
	assert.Contains(t, tags, "temps plein")
}

func TestExtractTagsNeverDropsProfession(t *testing.T) {
	// A description hitting the whole vocabulary still keeps the profession
	// within the 8-tag cap.
	dense := "SPL super lourd permis ce permis c porteur ADR FIMO FCO frigorifique benne citerne messagerie régional national découchés CDI temps plein"
	tags := ExtractTags("Chauffeur", "", dense, "chauffeur")
	assert.LessOrEqual(t, len(tags), 8)
	assert.Contains(t, tags, "chauffeur")
}

func TestExtractTagsScanLimit(t *testing.T) {
	// A phrase buried past the scan window is not matched.
	buried := strings.Repeat("x", tagScanLimit+10) + " frigorifique"
	tags := ExtractTags("Chauffeur", "", buried, "chauffeur")
	assert.NotContains(t, tags, "frigorifique")
}
