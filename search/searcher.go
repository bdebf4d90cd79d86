// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/jobwire/core"
	"github.com/poiesic/jobwire/extract"
	"github.com/poiesic/jobwire/storage"
)

// PostingView is a posting ready to serve: the stored row plus the
// structured facts extracted from its text on read.
type PostingView struct {
	Posting *core.Posting
	Facts   core.Facts
}

// Searcher is the read-side query surface over postings and tags.
type Searcher struct {
	postings  storage.PostingRepository
	tags      storage.TagRepository
	extractor *extract.Extractor
	countTTL  time.Duration
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithCountTTL sets how long a cached total may serve.
// Default is 300 seconds.
func WithCountTTL(ttl time.Duration) Option {
	return func(s *Searcher) error {
		if ttl < 0 {
			ttl = 0
		}
		s.countTTL = ttl
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	postings storage.PostingRepository,
	tags storage.TagRepository,
	extractor *extract.Extractor,
	opts ...Option,
) (*Searcher, error) {
	if postings == nil {
		return nil, ErrPostingRepositoryRequired
	}
	if tags == nil {
		return nil, ErrTagRepositoryRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	s := &Searcher{
		postings:  postings,
		tags:      tags,
		extractor: extractor,
		countTTL:  300 * time.Second,
		logger:    slog.Default().With("component", "search"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Page returns one keyset page of postings, newest first. A nil cursor
// starts from the top; the next page's cursor is the last row's (published,
// id) pair.
func (s *Searcher) Page(ctx context.Context, cursor *storage.Cursor, limit int) ([]*PostingView, error) {
	postings, err := s.postings.List(ctx, cursor, limit)
	if err != nil {
		return nil, err
	}
	return s.views(postings), nil
}

// ByTag returns one keyset page of postings carrying the tag with the given
// slug.
func (s *Searcher) ByTag(ctx context.Context, tagSlug string, cursor *storage.Cursor, limit int) ([]*PostingView, error) {
	tag, err := s.tags.GetTagBySlug(ctx, tagSlug)
	if err != nil {
		return nil, err
	}
	postings, err := s.postings.ListByTag(ctx, tag.Id, cursor, limit)
	if err != nil {
		return nil, err
	}
	return s.views(postings), nil
}

// BySlug returns one posting by its unique slug.
func (s *Searcher) BySlug(ctx context.Context, slug string) (*PostingView, error) {
	posting, err := s.postings.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.view(posting), nil
}

// ByGUID returns one posting by its external identity.
func (s *Searcher) ByGUID(ctx context.Context, guid string) (*PostingView, error) {
	posting, err := s.postings.GetByGUID(ctx, guid)
	if err != nil {
		return nil, err
	}
	return s.view(posting), nil
}

// Find returns postings whose title or company contains the query substring,
// newest first.
func (s *Searcher) Find(ctx context.Context, query string, limit int) ([]*PostingView, error) {
	postings, err := s.postings.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return s.views(postings), nil
}

// PopularTags returns tags carried by at least minCount postings, by count
// descending then name.
func (s *Searcher) PopularTags(ctx context.Context, minCount int) ([]*storage.TagCount, error) {
	return s.tags.PopularTags(ctx, minCount)
}

// Total returns the posting count, served from the count cache within its
// TTL.
func (s *Searcher) Total(ctx context.Context) (int64, error) {
	return s.postings.Count(ctx, s.countTTL)
}

// view computes the serving-time facts for one posting. The body is stored
// sanitized, so its plain text is safe to derive facts from.
func (s *Searcher) view(posting *core.Posting) *PostingView {
	text := posting.Summary + "\n" + posting.BodyHTML
	return &PostingView{
		Posting: posting,
		Facts:   s.extractor.Facts(posting.Title, text),
	}
}

func (s *Searcher) views(postings []*core.Posting) []*PostingView {
	views := make([]*PostingView, 0, len(postings))
	for _, posting := range postings {
		views = append(views, s.view(posting))
	}
	return views
}
