package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterMatch(t *testing.T) {
	filter := NewFilter("spl, permis ce ,CHAUFFEUR,,")
	assert.Equal(t, 3, filter.Size())

	// Any field can carry the hit, case-insensitively.
	assert.True(t, filter.Match("Chauffeur SPL", "", ""))
	assert.True(t, filter.Match("", "Les Chauffeurs Réunis", ""))
	assert.True(t, filter.Match("", "", "Titulaire du permis CE exigé"))
	assert.False(t, filter.Match("Cariste", "LogiSud", "CACES 3 requis"))
}

func TestFilterEmptyVocabulary(t *testing.T) {
	filter := NewFilter("  , ,")
	assert.Equal(t, 0, filter.Size())
	assert.False(t, filter.Match("Chauffeur SPL", "", ""))
}
