package core

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated from content so identical input always maps to the same ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// RawRecord is a single posting as it arrives from a feed, before filtering
// and enrichment. Records are transient: parsed, inspected, then discarded.
type RawRecord struct {
	Title       string
	Company     string
	Description string // raw markup or text, exactly as the feed carried it
	Link        string
	GUID        string
	PublishedAt int64 // epoch seconds
}

// Identity returns the stable external key used to deduplicate postings
// across runs. Falls back to the destination link when the feed carries no
// guid, and to a synthetic placeholder as a last resort, so a record is never
// rejected for lacking an identity.
func (r *RawRecord) Identity() string {
	if r.GUID != "" {
		return r.GUID
	}
	if r.Link != "" {
		return r.Link
	}
	synth := IDFromContent(r.Title + "|" + r.Company + "|" + strconv.FormatInt(r.PublishedAt, 10))
	return "synth:" + strconv.FormatUint(uint64(synth), 16)
}

// Posting is a durable, enriched job posting. A Posting is immutable once
// inserted except for its tag associations, which are append-only. Rows are
// destroyed only by retention pruning.
type Posting struct {
	Id          ID // IDFromContent of the GUID
	GUID        string
	Source      string
	Title       string
	Company     string
	Summary     string // short plain-text summary
	BodyHTML    string // sanitized structured markup
	URL         string
	PublishedAt int64 // epoch seconds
	Slug        string
	TagLine     string // denormalized comma-joined tag list for fast display
	InsertedAt  int64
}

// Cursor returns the keyset-pagination cursor for this posting: pages are
// ordered by (PublishedAt, Id) descending.
func (p *Posting) Cursor() (int64, ID) {
	return p.PublishedAt, p.Id
}

// Tag is a vocabulary entry. Tags are created lazily on first use and never
// deleted; orphaned tags remain valid vocabulary.
type Tag struct {
	Id         ID // IDFromContent of the slug
	Name       string
	Slug       string
	InsertedAt int64
}

// TagLine joins normalized tags into the denormalized display form stored on
// a Posting.
func TagLine(tags []string) string {
	return strings.Join(tags, ", ")
}
