package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/jobwire/core"
)

func TestPostingRoundTrip(t *testing.T) {
	p := &core.Posting{
		Id:          core.IDFromContent("G1"),
		GUID:        "G1",
		Source:      "feed.example.org",
		Title:       "Chauffeur SPL (H/F)",
		Company:     "Transports Durand",
		Summary:     "Conduite d'un ensemble articulé en régional.",
		BodyHTML:    "<h3>About the role</h3><p>Conduite régionale.</p>",
		URL:         "https://example.org/jobs/1",
		PublishedAt: 1756300000,
		Slug:        "chauffeur-spl-h-f-transports-durand",
		TagLine:     "spl, cdi, chauffeur",
		InsertedAt:  1756300100,
	}

	out, err := UnmarshalPosting(MarshalPosting(p))
	require.NoError(t, err)
	assert.Equal(t, p, out)
}

func TestPostingUnmarshalTruncated(t *testing.T) {
	p := &core.Posting{Id: 1, GUID: "G1", Title: "t", Slug: "t"}
	data := MarshalPosting(p)

	_, err := UnmarshalPosting(data[:len(data)/2])
	assert.Error(t, err)
}

func TestTagRoundTrip(t *testing.T) {
	tag := &core.Tag{
		Id:         core.IDFromContent("poids-lourd"),
		Name:       "poids lourd",
		Slug:       "poids-lourd",
		InsertedAt: 1756300000,
	}

	out, err := UnmarshalTag(MarshalTag(tag))
	require.NoError(t, err)
	assert.Equal(t, tag, out)
}

func TestCountCacheRoundTrip(t *testing.T) {
	c := &CountCache{Total: 2500, RefreshedAt: 1756300000}

	out, err := UnmarshalCountCache(MarshalCountCache(c))
	require.NoError(t, err)
	assert.Equal(t, c, out)
}

func TestIDRoundTrip(t *testing.T) {
	id := core.IDFromContent("G1")
	out, err := UnmarshalID(MarshalID(id))
	require.NoError(t, err)
	assert.Equal(t, id, out)
}
