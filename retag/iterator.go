package retag

import (
	"context"

	"github.com/poiesic/jobwire/core"
	"github.com/poiesic/jobwire/storage"
)

// DefaultPageSize is the default number of postings fetched per page.
const DefaultPageSize = 100

// PostingIterator walks every stored posting in keyset pages, newest first.
type PostingIterator struct {
	repo     storage.PostingRepository
	pageSize int
}

// NewPostingIterator creates an iterator over all postings.
// pageSize: number of postings per page (must be > 0)
func NewPostingIterator(repo storage.PostingRepository, pageSize int) *PostingIterator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &PostingIterator{
		repo:     repo,
		pageSize: pageSize,
	}
}

// ForEach calls fn once per page until the store is exhausted. Iteration
// stops on the first error from fn. Context cancellation is checked between
// pages.
func (it *PostingIterator) ForEach(ctx context.Context, fn func([]*core.Posting) error) error {
	var cursor *storage.Cursor
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		page, err := it.repo.List(ctx, cursor, it.pageSize)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			return nil
		}

		if err := fn(page); err != nil {
			return err
		}

		publishedAt, id := page[len(page)-1].Cursor()
		cursor = &storage.Cursor{PublishedAt: publishedAt, Id: id}
	}
}
