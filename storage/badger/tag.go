package badger

import (
	"bytes"
	"context"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/jobwire/core"
	"github.com/poiesic/jobwire/storage"
)

// TagRepository implements storage.TagRepository for BadgerDB. It is
// read-only; tag rows are written by the PostingRepository.
type TagRepository struct {
	backend *Backend
}

var _ storage.TagRepository = (*TagRepository)(nil)

// NewTagRepository creates a new TagRepository.
func NewTagRepository(backend *Backend) (*TagRepository, error) {
	return &TagRepository{
		backend: backend,
	}, nil
}

// Close releases resources. TagRepository has no resources to release.
func (r *TagRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *TagRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// GetTag retrieves a tag by ID.
func (r *TagRepository) GetTag(ctx context.Context, id core.ID) (*core.Tag, error) {
	var result *core.Tag
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readTag(tx, makeTagKey(id))
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

// GetTagBySlug retrieves a tag by its unique slug.
func (r *TagRepository) GetTagBySlug(ctx context.Context, slug string) (*core.Tag, error) {
	return r.getViaIndex(makeTagSlugKey(slug))
}

// GetTagByName retrieves a tag by its unique normalized name.
func (r *TagRepository) GetTagByName(ctx context.Context, name string) (*core.Tag, error) {
	return r.getViaIndex(makeTagNameKey(name))
}

// PopularTags returns tags carried by at least minCount postings, ordered by
// count descending then name ascending.
func (r *TagRepository) PopularTags(ctx context.Context, minCount int) ([]*storage.TagCount, error) {
	if minCount < 1 {
		minCount = 1
	}

	var results []*storage.TagCount
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		tagOpts := badger.DefaultIteratorOptions
		tagOpts.Prefix = []byte(tagPrefix + ":")
		tagIter := tx.NewIterator(tagOpts)

		var tags []*core.Tag
		for tagIter.Rewind(); tagIter.Valid(); tagIter.Next() {
			var tag *core.Tag
			err := tagIter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				tag, unmarshalErr = storage.UnmarshalTag(val)
				return unmarshalErr
			})
			if err != nil {
				tagIter.Close()
				return err
			}
			if tag != nil {
				tags = append(tags, tag)
			}
		}
		tagIter.Close()

		for _, tag := range tags {
			count := countTagAssociations(tx, tag.Id)
			if count >= minCount {
				results = append(results, &storage.TagCount{Tag: tag, Count: count})
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *storage.TagCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Tag.Name, b.Tag.Name)
	})
	return results, nil
}

func (r *TagRepository) getViaIndex(indexKey []byte) (*core.Tag, error) {
	var result *core.Tag
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

		result, err = readTag(tx, makeTagKey(id))
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

// readTag reads a tag from the transaction.
func readTag(tx *badger.Txn, key []byte) (*core.Tag, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var tag *core.Tag
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		tag, unmarshalErr = storage.UnmarshalTag(val)
		return unmarshalErr
	})
	return tag, err
}

// getOrCreateTag resolves a normalized tag name to its row, creating the row
// lazily on first use. A slug collision between distinct names resolves to
// the tag that claimed the slug first. Names that slugify to nothing are
// dropped (nil, nil).
func getOrCreateTag(tx *badger.Txn, name string, now int64) (*core.Tag, error) {
	slug := core.Slugify(name)
	if slug == "" {
		return nil, nil
	}

	item, err := tx.Get(makeTagNameKey(name))
	if err == nil {
		var id core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return nil, err
		}
		return readTag(tx, makeTagKey(id))
	}
	if err != badger.ErrKeyNotFound {
		return nil, err
	}

	// First-insert-wins on the slug index.
	item, err = tx.Get(makeTagSlugKey(slug))
	if err == nil {
		var id core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return nil, err
		}
		return readTag(tx, makeTagKey(id))
	}
	if err != badger.ErrKeyNotFound {
		return nil, err
	}

	tag := &core.Tag{
		Id:         core.IDFromContent(slug),
		Name:       name,
		Slug:       slug,
		InsertedAt: now,
	}
	if err := tx.Set(makeTagKey(tag.Id), storage.MarshalTag(tag)); err != nil {
		return nil, err
	}
	if err := tx.Set(makeTagSlugKey(slug), storage.MarshalID(tag.Id)); err != nil {
		return nil, err
	}
	if err := tx.Set(makeTagNameKey(name), storage.MarshalID(tag.Id)); err != nil {
		return nil, err
	}
	return tag, nil
}

// countTagAssociations counts the postings associated with a tag.
func countTagAssociations(tx *badger.Txn, tagID core.ID) int {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	prefix := makePartialTagAssocKey(tagID)
	count := 0
	for iter.Seek(prefix); iter.Valid(); iter.Next() {
		if !bytes.HasPrefix(iter.Item().Key(), prefix) {
			break
		}
		count++
	}
	return count
}
