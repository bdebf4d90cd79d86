package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/jobwire/core"
)

// Key prefixes for different data types
const (
	postingPrefix     = "jobrec"
	postingGUIDPrefix = "jobguid"
	postingSlugPrefix = "jobslug"
	postingDatePrefix = "jobdate"
	tagPrefix         = "tagrec"
	tagSlugPrefix     = "tagslug"
	tagNamePrefix     = "tagname"
	tagAssocPrefix    = "jobtag" // tag -> posting, date ordered
	postingTagPrefix  = "tagjob" // posting -> tag (reverse association)
	countCacheKeyName = "jobcount"
)

// makePostingKey generates a key for a posting by ID.
func makePostingKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", postingPrefix, id))
}

// makePostingGUIDKey generates a key for the identity unique index.
func makePostingGUIDKey(guid string) []byte {
	return []byte(postingGUIDPrefix + ":" + guid)
}

// makePostingSlugKey generates a key for the slug unique index.
func makePostingSlugKey(slug string) []byte {
	return []byte(postingSlugPrefix + ":" + slug)
}

// makePostingDateKey generates a composite key for the date index.
// Format: prefix:publishedAt:id, both in BigEndian so lexicographic order
// matches (publishedAt, id) order.
func makePostingDateKey(publishedAt int64, id core.ID) []byte {
	prefix := []byte(postingDatePrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(publishedAt))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// maxPostingDateKey is the largest possible date index key, used to start
// reverse iteration at the newest posting.
func maxPostingDateKey() []byte {
	prefix := []byte(postingDatePrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	for i := offset; i < len(buf); i++ {
		buf[i] = 0xFF
	}
	return buf
}

// makeTagKey generates a key for a tag by ID.
func makeTagKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", tagPrefix, id))
}

// makeTagSlugKey generates a key for the tag slug unique index.
func makeTagSlugKey(slug string) []byte {
	return []byte(tagSlugPrefix + ":" + slug)
}

// makeTagNameKey generates a key for the tag name unique index.
func makeTagNameKey(name string) []byte {
	return []byte(tagNamePrefix + ":" + name)
}

// makeTagAssocKey generates a composite key for the tag association index.
// Format: prefix:tagID:publishedAt:postingID in BigEndian, so reverse
// iteration within one tag yields (publishedAt, postingID) descending.
func makeTagAssocKey(tagID core.ID, publishedAt int64, postingID core.ID) []byte {
	prefix := []byte(tagAssocPrefix + ":")
	buf := make([]byte, len(prefix)+24)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(tagID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(publishedAt))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(postingID))
	return buf
}

// makePartialTagAssocKey generates a partial key covering one tag's
// association range.
func makePartialTagAssocKey(tagID core.ID) []byte {
	prefix := []byte(tagAssocPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(tagID))
	return buf
}

// maxTagAssocKey is the largest association key for one tag, used to start
// reverse iteration at the tag's newest posting.
func maxTagAssocKey(tagID core.ID) []byte {
	buf := makeTagAssocKey(tagID, 0, 0)
	for i := len(buf) - 16; i < len(buf); i++ {
		buf[i] = 0xFF
	}
	return buf
}

// makePostingTagKey generates a composite key for the reverse association.
// Format: prefix:postingID:tagID in BigEndian.
func makePostingTagKey(postingID, tagID core.ID) []byte {
	prefix := []byte(postingTagPrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(postingID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(tagID))
	return buf
}

// makePartialPostingTagKey generates a partial key covering one posting's
// reverse associations.
func makePartialPostingTagKey(postingID core.ID) []byte {
	prefix := []byte(postingTagPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(postingID))
	return buf
}

// countCacheKey is the single key holding the cached posting total.
func countCacheKey() []byte {
	return []byte(countCacheKeyName)
}
