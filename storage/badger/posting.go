package badger

import (
	"bytes"
	"context"
	"encoding/binary"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/jobwire/core"
	"github.com/poiesic/jobwire/storage"
)

// PostingRepository implements storage.PostingRepository for BadgerDB.
type PostingRepository struct {
	backend *Backend
}

var _ storage.PostingRepository = (*PostingRepository)(nil)

// NewPostingRepository creates a new PostingRepository.
func NewPostingRepository(backend *Backend) (*PostingRepository, error) {
	return &PostingRepository{
		backend: backend,
	}, nil
}

// Close releases resources. PostingRepository has no resources to release.
func (r *PostingRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *PostingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// InsertBatch writes one batch of enriched postings in a single transaction.
// Rows colliding on the identity or slug unique index are silently ignored.
func (r *PostingRepository) InsertBatch(ctx context.Context, batch []storage.PostingInsert) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	inserted := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC().Unix()
		for _, ins := range batch {
			posting := ins.Posting
			if err := core.ValidatePosting(posting); err != nil {
				return err
			}

			// Insert-or-ignore on both unique indexes.
			if exists, err := keyExists(tx, makePostingGUIDKey(posting.GUID)); err != nil {
				return err
			} else if exists {
				continue
			}
			if exists, err := keyExists(tx, makePostingSlugKey(posting.Slug)); err != nil {
				return err
			} else if exists {
				continue
			}

			if posting.InsertedAt == 0 {
				posting.InsertedAt = now
			}

			if err := tx.Set(makePostingKey(posting.Id), storage.MarshalPosting(posting)); err != nil {
				return err
			}
			if err := tx.Set(makePostingGUIDKey(posting.GUID), storage.MarshalID(posting.Id)); err != nil {
				return err
			}
			if err := tx.Set(makePostingSlugKey(posting.Slug), storage.MarshalID(posting.Id)); err != nil {
				return err
			}
			if err := tx.Set(makePostingDateKey(posting.PublishedAt, posting.Id), storage.MarshalID(posting.Id)); err != nil {
				return err
			}

			for _, name := range ins.Tags {
				tag, err := getOrCreateTag(tx, name, now)
				if err != nil {
					return err
				}
				if tag == nil {
					continue
				}
				if err := setAssociation(tx, tag.Id, posting); err != nil {
					return err
				}
			}

			inserted++
		}
		return tx.Commit()
	}, true)

	return inserted, err
}

// HasIdentity reports whether a posting with the given identity exists.
func (r *PostingRepository) HasIdentity(ctx context.Context, guid string) (bool, error) {
	var found bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		found, err = keyExists(tx, makePostingGUIDKey(guid))
		return err
	}, false)
	return found, err
}

// AppendTags appends tag associations to an existing posting and refreshes
// its denormalized tag line. Existing pairs are no-ops.
func (r *PostingRepository) AppendTags(ctx context.Context, id core.ID, tags []string) (int, error) {
	added := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		posting, err := readPosting(tx, makePostingKey(id))
		if err != nil {
			return err
		}
		if posting == nil {
			return storage.ErrNotFound
		}

		now := time.Now().UTC().Unix()
		line := posting.TagLine
		for _, name := range core.NormalizeTags(tags) {
			tag, err := getOrCreateTag(tx, name, now)
			if err != nil {
				return err
			}
			if tag == nil {
				continue
			}

			exists, err := keyExists(tx, makePostingTagKey(posting.Id, tag.Id))
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if err := setAssociation(tx, tag.Id, posting); err != nil {
				return err
			}
			if line == "" {
				line = tag.Name
			} else {
				line += ", " + tag.Name
			}
			added++
		}

		if line != posting.TagLine {
			posting.TagLine = line
			if err := tx.Set(makePostingKey(posting.Id), storage.MarshalPosting(posting)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return added, err
}

// GetPosting retrieves a single posting by ID.
func (r *PostingRepository) GetPosting(ctx context.Context, id core.ID) (*core.Posting, error) {
	var result *core.Posting
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readPosting(tx, makePostingKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetByGUID retrieves a posting by its external identity.
func (r *PostingRepository) GetByGUID(ctx context.Context, guid string) (*core.Posting, error) {
	return r.getViaIndex(makePostingGUIDKey(guid))
}

// GetBySlug retrieves a posting by its unique slug.
func (r *PostingRepository) GetBySlug(ctx context.Context, slug string) (*core.Posting, error) {
	return r.getViaIndex(makePostingSlugKey(slug))
}

// List returns up to limit postings in (PublishedAt, Id) descending order,
// starting strictly after the cursor.
func (r *PostingRepository) List(ctx context.Context, cursor *storage.Cursor, limit int) ([]*core.Posting, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.Posting
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		start := maxPostingDateKey()
		if cursor != nil {
			start = makePostingDateKey(cursor.PublishedAt, cursor.Id)
		}
		prefix := []byte(postingDatePrefix + ":")

		for iter.Seek(start); iter.Valid() && len(results) < limit; iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, prefix) {
				break
			}
			// The cursor row itself was already served.
			if cursor != nil && bytes.Equal(key, start) {
				continue
			}

			id := core.ID(binary.BigEndian.Uint64(key[len(key)-8:]))
			posting, err := readPosting(tx, makePostingKey(id))
			if err != nil {
				return err
			}
			if posting != nil {
				results = append(results, posting)
			}
		}
		return nil
	}, false)

	return results, err
}

// ListByTag is List restricted to postings carrying the given tag.
func (r *PostingRepository) ListByTag(ctx context.Context, tagID core.ID, cursor *storage.Cursor, limit int) ([]*core.Posting, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.Posting
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		start := maxTagAssocKey(tagID)
		if cursor != nil {
			start = makeTagAssocKey(tagID, cursor.PublishedAt, cursor.Id)
		}
		prefix := makePartialTagAssocKey(tagID)

		for iter.Seek(start); iter.Valid() && len(results) < limit; iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, prefix) {
				break
			}
			if cursor != nil && bytes.Equal(key, start) {
				continue
			}

			id := core.ID(binary.BigEndian.Uint64(key[len(key)-8:]))
			posting, err := readPosting(tx, makePostingKey(id))
			if err != nil {
				return err
			}
			if posting != nil {
				results = append(results, posting)
			}
		}
		return nil
	}, false)

	return results, err
}

// Search scans all postings for a case-insensitive substring match on title
// or company, newest first.
func (r *PostingRepository) Search(ctx context.Context, query string, limit int) ([]*core.Posting, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []*core.Posting{}, nil
	}

	var matches []*core.Posting
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(postingPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var posting *core.Posting
			err := iter.Item().Value(func(val []byte) error {
				var err error
				posting, err = storage.UnmarshalPosting(val)
				return err
			})
			if err != nil {
				return err
			}
			if posting == nil {
				continue
			}
			if strings.Contains(strings.ToLower(posting.Title), query) ||
				strings.Contains(strings.ToLower(posting.Company), query) {
				matches = append(matches, posting)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(matches, func(a, b *core.Posting) int {
		if a.PublishedAt != b.PublishedAt {
			if a.PublishedAt > b.PublishedAt {
				return -1
			}
			return 1
		}
		if a.Id == b.Id {
			return 0
		}
		if a.Id > b.Id {
			return -1
		}
		return 1
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Count serves the total from the count cache when fresh, recomputing and
// re-caching otherwise.
func (r *PostingRepository) Count(ctx context.Context, ttl time.Duration) (int64, error) {
	if ttl > 0 {
		var cached *storage.CountCache
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			item, err := tx.Get(countCacheKey())
			if err != nil {
				if err == badger.ErrKeyNotFound {
					return nil
				}
				return err
			}
			return item.Value(func(val []byte) error {
				var unmarshalErr error
				cached, unmarshalErr = storage.UnmarshalCountCache(val)
				return unmarshalErr
			})
		}, false)
		if err != nil {
			return 0, err
		}

		now := time.Now().UTC().Unix()
		if cached != nil && now-cached.RefreshedAt <= int64(ttl/time.Second) {
			return cached.Total, nil
		}
	}
	return r.RefreshCount(ctx)
}

// RefreshCount recomputes the total and overwrites the cache.
func (r *PostingRepository) RefreshCount(ctx context.Context) (int64, error) {
	var total int64
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		total = countDateIndex(tx)
		cache := &storage.CountCache{Total: total, RefreshedAt: time.Now().UTC().Unix()}
		if err := tx.Set(countCacheKey(), storage.MarshalCountCache(cache)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	return total, err
}

// Prune deletes everything beyond the first max rows in (PublishedAt, Id)
// descending order, in one transaction, then writes the new total to the
// count cache directly so no recount is needed.
func (r *PostingRepository) Prune(ctx context.Context, max int) (int, error) {
	if max < 0 {
		return 0, storage.ErrInvalidQuery
	}

	removed := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)

		prefix := []byte(postingDatePrefix + ":")
		seen := 0
		var victims []core.ID
		for iter.Seek(maxPostingDateKey()); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, prefix) {
				break
			}
			seen++
			if seen <= max {
				continue
			}
			victims = append(victims, core.ID(binary.BigEndian.Uint64(key[len(key)-8:])))
		}
		iter.Close()

		for _, id := range victims {
			if err := deletePosting(tx, id); err != nil {
				return err
			}
		}

		total := int64(seen - len(victims))
		cache := &storage.CountCache{Total: total, RefreshedAt: time.Now().UTC().Unix()}
		if err := tx.Set(countCacheKey(), storage.MarshalCountCache(cache)); err != nil {
			return err
		}

		removed = len(victims)
		return tx.Commit()
	}, true)

	return removed, err
}

// Helper methods

func (r *PostingRepository) getViaIndex(indexKey []byte) (*core.Posting, error) {
	var result *core.Posting
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(indexKey)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var id core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = readPosting(tx, makePostingKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// keyExists reports whether a key is present without reading its value.
func keyExists(tx *badger.Txn, key []byte) (bool, error) {
	_, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// readPosting reads a posting from the transaction.
func readPosting(tx *badger.Txn, key []byte) (*core.Posting, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var posting *core.Posting
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		posting, unmarshalErr = storage.UnmarshalPosting(val)
		return unmarshalErr
	})
	return posting, err
}

// setAssociation writes both directions of a posting-tag pair. Set is
// idempotent, which gives the association its set semantics.
func setAssociation(tx *badger.Txn, tagID core.ID, posting *core.Posting) error {
	if err := tx.Set(makeTagAssocKey(tagID, posting.PublishedAt, posting.Id), storage.MarshalID(posting.Id)); err != nil {
		return err
	}
	return tx.Set(makePostingTagKey(posting.Id, tagID), storage.MarshalID(tagID))
}

// deletePosting removes a posting and every index and association entry that
// references it.
func deletePosting(tx *badger.Txn, id core.ID) error {
	posting, err := readPosting(tx, makePostingKey(id))
	if err != nil {
		return err
	}
	if posting == nil {
		return nil
	}

	// Collect the posting's tag IDs from the reverse association.
	var tagIDs []core.ID
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	prefix := makePartialPostingTagKey(id)
	for iter.Seek(prefix); iter.Valid(); iter.Next() {
		key := iter.Item().Key()
		if !bytes.HasPrefix(key, prefix) {
			break
		}
		tagIDs = append(tagIDs, core.ID(binary.BigEndian.Uint64(key[len(key)-8:])))
	}
	iter.Close()

	for _, tagID := range tagIDs {
		if err := tx.Delete(makeTagAssocKey(tagID, posting.PublishedAt, id)); err != nil {
			return err
		}
		if err := tx.Delete(makePostingTagKey(id, tagID)); err != nil {
			return err
		}
	}

	if err := tx.Delete(makePostingDateKey(posting.PublishedAt, id)); err != nil {
		return err
	}
	if err := tx.Delete(makePostingGUIDKey(posting.GUID)); err != nil {
		return err
	}
	if err := tx.Delete(makePostingSlugKey(posting.Slug)); err != nil {
		return err
	}
	return tx.Delete(makePostingKey(id))
}

// countDateIndex counts date index entries without prefetching values.
func countDateIndex(tx *badger.Txn) int64 {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(postingDatePrefix + ":")
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var total int64
	for iter.Rewind(); iter.Valid(); iter.Next() {
		total++
	}
	return total
}
