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


package retag

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/jobwire/core"
	"github.com/poiesic/jobwire/enhance"
	"github.com/poiesic/jobwire/storage"
)

// Config holds configuration for a retagging pass.
type Config struct {
	// PageSize is the number of postings fetched per keyset page.
	PageSize int

	// Workers is the worker pool size for concurrent tag writes.
	Workers int

	// MaxRetries is the maximum number of attempts per posting.
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}
	return &Config{
		PageSize:   100,
		Workers:    workers,
		MaxRetries: 3,
		RetryDelay: 1 * time.Second,
	}
}

// Retagger re-derives every stored posting's keyword tags against the
// current profession vocabulary and appends the new ones. Existing tags are
// never removed; tag associations are append-only.
type Retagger struct {
	postings   storage.PostingRepository
	profession string
	config     *Config
	pool       *ants.Pool
	iterator   *PostingIterator
	logger     *slog.Logger
}

// NewRetagger creates a retagger for the given profession vocabulary.
func NewRetagger(postings storage.PostingRepository, profession string, config *Config) (*Retagger, error) {
	if postings == nil {
		return nil, ErrRepositoryRequired
	}
	if profession == "" {
		return nil, ErrProfessionRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	pool, err := ants.NewPool(config.Workers)
	if err != nil {
		return nil, err
	}

	return &Retagger{
		postings:   postings,
		profession: profession,
		config:     config,
		pool:       pool,
		iterator:   NewPostingIterator(postings, config.PageSize),
		logger:     slog.Default().With("component", "retag"),
	}, nil
}

// Close releases the worker pool.
func (r *Retagger) Close() error {
	r.pool.Release()
	return nil
}

// Run walks the whole store and appends newly derived tags. Returns the
// number of associations created. Tag writes within a page run concurrently
// on the worker pool; pages are sequential so memory stays bounded.
func (r *Retagger) Run(ctx context.Context) (int, error) {
	started := time.Now()

	var (
		processed atomic.Int64
		added     atomic.Int64
		firstErr  error
		errOnce   sync.Once
	)

	err := r.iterator.ForEach(ctx, func(page []*core.Posting) error {
		var wg sync.WaitGroup
		for _, posting := range page {
			posting := posting
			wg.Add(1)
			if err := r.pool.Submit(func() {
				defer wg.Done()
				if err := r.retagOne(ctx, posting, &added); err != nil {
					errOnce.Do(func() { firstErr = err })
				}
				processed.Add(1)
			}); err != nil {
				wg.Done()
				return err
			}
		}
		wg.Wait()

		if firstErr != nil {
			return firstErr
		}
		r.logger.Info("retagging progress", "processed", processed.Load(), "added", added.Load())
		return nil
	})
	if err != nil {
		return int(added.Load()), err
	}

	r.logger.Info("retagging complete",
		"processed", processed.Load(),
		"added", added.Load(),
		"duration", time.Since(started).Round(time.Millisecond))
	return int(added.Load()), nil
}

func (r *Retagger) retagOne(ctx context.Context, posting *core.Posting, added *atomic.Int64) error {
	tags := enhance.ExtractTags(posting.Title, posting.Company, enhance.PlainText(posting.BodyHTML), r.profession)
	return RetryWithBackoff(ctx, func() error {
		n, err := r.postings.AppendTags(ctx, posting.Id, tags)
		if err != nil {
			return err
		}
		added.Add(int64(n))
		return nil
	}, r.config.MaxRetries, r.config.RetryDelay)
}
