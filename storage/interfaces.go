package storage

import (
	"context"
	"time"

	"github.com/poiesic/jobwire/core"
)

// Cursor is a keyset-pagination cursor: the (PublishedAt, Id) pair of the
// last row the caller has seen. A nil *Cursor means "start from the top".
type Cursor struct {
	PublishedAt int64
	Id          core.ID
}

// PostingInsert couples a posting with its normalized tag names for batched
// insertion.
type PostingInsert struct {
	Posting *core.Posting
	Tags    []string
}

// TagCount is a tag together with the number of postings associated with it.
type TagCount struct {
	Tag   *core.Tag
	Count int
}

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// PostingRepository provides operations for managing postings. It is the
// exclusive owner of writes to postings, tags, their associations, and the
// count cache.
type PostingRepository interface {
	Repository

	// InsertBatch writes a batch of enriched postings in one atomic
	// transaction, with insert-or-ignore semantics on the identity and slug
	// unique indexes. For each inserted posting, tag rows are created lazily
	// and association entries are written with set semantics.
	// Returns the number of postings actually inserted (conflicts are
	// silently ignored, not errors).
	InsertBatch(ctx context.Context, batch []PostingInsert) (int, error)

	// HasIdentity reports whether a posting with the given identity (guid)
	// already exists. Used as a cheap dedup pre-check before enrichment work
	// is spent on a record.
	HasIdentity(ctx context.Context, guid string) (bool, error)

	// AppendTags appends tag associations to an existing posting.
	// Re-asserting an existing pair is a no-op; the denormalized tag line is
	// refreshed to reflect the full association set.
	// Returns the number of newly created associations.
	AppendTags(ctx context.Context, id core.ID, tags []string) (int, error)

	// GetPosting retrieves a posting by ID. Returns ErrNotFound if absent.
	GetPosting(ctx context.Context, id core.ID) (*core.Posting, error)

	// GetByGUID retrieves a posting by its external identity.
	GetByGUID(ctx context.Context, guid string) (*core.Posting, error)

	// GetBySlug retrieves a posting by its unique slug.
	GetBySlug(ctx context.Context, slug string) (*core.Posting, error)

	// List returns up to limit postings ordered by (PublishedAt, Id)
	// descending, starting strictly after the cursor (nil = newest first).
	List(ctx context.Context, cursor *Cursor, limit int) ([]*core.Posting, error)

	// ListByTag is List restricted to postings associated with tagID.
	ListByTag(ctx context.Context, tagID core.ID, cursor *Cursor, limit int) ([]*core.Posting, error)

	// Search returns up to limit postings whose title or company contains the
	// query substring (case-insensitive), newest first.
	Search(ctx context.Context, query string, limit int) ([]*core.Posting, error)

	// Count returns the total posting count, served from the count cache when
	// it was refreshed within ttl, recomputed and re-cached otherwise.
	Count(ctx context.Context, ttl time.Duration) (int64, error)

	// RefreshCount forces a recount and overwrites the cache.
	RefreshCount(ctx context.Context) (int64, error)

	// Prune deletes the oldest postings (ordered by publication time
	// descending, identity descending: everything beyond the first max rows)
	// in one transaction and updates the count cache directly.
	// Returns the number of postings removed.
	Prune(ctx context.Context, max int) (int, error)
}

// TagRepository provides read operations over the tag vocabulary.
// Tag rows themselves are written by the PostingRepository as a side effect
// of posting insertion.
type TagRepository interface {
	Repository

	// GetTag retrieves a tag by ID. Returns ErrNotFound if absent.
	GetTag(ctx context.Context, id core.ID) (*core.Tag, error)

	// GetTagBySlug retrieves a tag by its unique slug.
	GetTagBySlug(ctx context.Context, slug string) (*core.Tag, error)

	// GetTagByName retrieves a tag by its unique normalized name.
	GetTagByName(ctx context.Context, name string) (*core.Tag, error)

	// PopularTags returns tags with at least minCount associated postings,
	// ordered by count descending then name ascending.
	PopularTags(ctx context.Context, minCount int) ([]*TagCount, error)
}
