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


package ingestion

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/poiesic/jobwire/core"
	"github.com/poiesic/jobwire/enhance"
	"github.com/poiesic/jobwire/feed"
	"github.com/poiesic/jobwire/storage"
)

// FetchFunc opens the feed byte stream for one run. The pipeline owns the
// returned reader.
type FetchFunc func(ctx context.Context) (io.ReadCloser, error)

// Stats summarizes one ingestion run. Matched and Inserted are reported
// separately: a matched record can still lose the insert to a slug conflict.
type Stats struct {
	Seen     int // records emitted by the parser
	Matched  int // relevant, not yet stored
	Skipped  int // irrelevant, duplicate, or unusable
	Inserted int // rows actually written
	Enhanced int // enriched via the AI path
	Fallback int // enriched via the deterministic path
}

// Pipeline orchestrates one ingestion run: fetch, parse, filter, enrich,
// persist, prune. Runs are single-flight: a trigger while a run is in
// progress is a logged no-op, not an error, since runs are idempotent and a
// queued second run would do no useful work.
type Pipeline struct {
	fetch       FetchFunc
	filter      *feed.Filter
	enhancer    enhance.Enhancer
	fallback    enhance.Enhancer
	postings    storage.PostingRepository
	source      string
	batchSize   int
	aiLimit     int
	maxPostings int
	running     atomic.Bool
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithSource labels inserted postings with the feed they came from.
func WithSource(source string) Option {
	return func(p *Pipeline) error {
		p.source = source
		return nil
	}
}

// WithBatchSize sets how many enriched postings are flushed per transaction.
// Default is 100.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithAILimit caps how many records may use the AI path per run.
// 0 means unlimited; past the cap, remaining records use the deterministic
// fallback even when AI is available. Default is 0.
func WithAILimit(limit int) Option {
	return func(p *Pipeline) error {
		if limit < 0 {
			limit = 0
		}
		p.aiLimit = limit
		return nil
	}
}

// WithMaxPostings bounds how many postings are retained after a run.
// 0 disables pruning. Default is 0.
func WithMaxPostings(max int) Option {
	return func(p *Pipeline) error {
		if max < 0 {
			max = 0
		}
		p.maxPostings = max
		return nil
	}
}

// NewPipeline creates an ingestion pipeline. The enhancer is the configured
// enrichment path (possibly AI-backed); the fallback is the deterministic
// path used once the per-run AI budget is spent.
func NewPipeline(
	fetch FetchFunc,
	filter *feed.Filter,
	enhancer enhance.Enhancer,
	fallback enhance.Enhancer,
	postings storage.PostingRepository,
	opts ...Option,
) (*Pipeline, error) {
	if fetch == nil {
		return nil, ErrFetcherRequired
	}
	if filter == nil {
		return nil, ErrFilterRequired
	}
	if enhancer == nil {
		return nil, ErrEnhancerRequired
	}
	if fallback == nil {
		return nil, ErrFallbackRequired
	}
	if postings == nil {
		return nil, ErrRepositoryRequired
	}

	p := &Pipeline{
		fetch:     fetch,
		filter:    filter,
		enhancer:  enhancer,
		fallback:  fallback,
		postings:  postings,
		source:    "feed",
		batchSize: 100,
		logger:    slog.Default().With("component", "ingestion"),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Running reports whether a run is currently in progress.
func (p *Pipeline) Running() bool {
	return p.running.Load()
}

// Run executes one ingestion run. A concurrent trigger returns empty stats
// immediately. Transport and fatal stream errors are returned; enrichment
// never fails a run. The running flag is cleared on every exit path.
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	if !p.running.CompareAndSwap(false, true) {
		p.logger.Info("run already in progress, ignoring trigger")
		return &Stats{}, nil
	}
	defer p.running.Store(false)

	started := time.Now()
	stats := &Stats{}

	body, err := p.fetch(ctx)
	if err != nil {
		p.logger.Error("feed fetch failed", "error", err)
		return stats, err
	}
	defer body.Close()

	matches, err := p.collect(ctx, body, stats)
	if err != nil {
		p.logger.Error("feed stream failed", "error", err)
		return stats, err
	}

	if err := p.persist(ctx, matches, stats); err != nil {
		p.logger.Error("persistence failed", "error", err)
		return stats, err
	}

	// Force a recount so the visible total is immediately accurate.
	if _, err := p.postings.RefreshCount(ctx); err != nil {
		p.logger.Warn("count refresh failed", "error", err)
	}
	if p.maxPostings > 0 {
		removed, err := p.postings.Prune(ctx, p.maxPostings)
		if err != nil {
			p.logger.Warn("retention pruning failed", "error", err)
		} else if removed > 0 {
			p.logger.Info("retention pruning complete", "removed", removed, "kept", p.maxPostings)
		}
	}

	p.logger.Info("run complete",
		"seen", stats.Seen,
		"matched", stats.Matched,
		"skipped", stats.Skipped,
		"inserted", stats.Inserted,
		"enhanced", stats.Enhanced,
		"fallback", stats.Fallback,
		"duration", time.Since(started).Round(time.Millisecond))
	return stats, nil
}

// collect streams the feed, keeping records that are relevant, not yet
// stored, and usable.
func (p *Pipeline) collect(ctx context.Context, body io.Reader, stats *Stats) ([]core.RawRecord, error) {
	var matches []core.RawRecord
	parser := feed.NewParser(body, p.logger)
	err := parser.Each(func(rec core.RawRecord) error {
		stats.Seen++
		if rec.Title == "" || !p.filter.Match(rec.Title, rec.Company, rec.Description) {
			stats.Skipped++
			return nil
		}
		exists, err := p.postings.HasIdentity(ctx, rec.Identity())
		if err != nil {
			return err
		}
		if exists {
			// Already stored: no enrichment is spent on it.
			stats.Skipped++
			return nil
		}
		matches = append(matches, rec)
		stats.Matched++
		return nil
	})
	return matches, err
}

// persist enriches the matches sequentially and flushes them in fixed-size
// transactional batches, the last one possibly smaller. Enrichment is not
// parallelized: AI calls are rate-sensitive and sequencing keeps the AI
// budget counter exact.
func (p *Pipeline) persist(ctx context.Context, matches []core.RawRecord, stats *Stats) error {
	batch := make([]storage.PostingInsert, 0, p.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := p.postings.InsertBatch(ctx, batch)
		if err != nil {
			return err
		}
		stats.Inserted += n
		batch = batch[:0]
		return nil
	}

	for _, rec := range matches {
		result, err := p.enrich(ctx, rec, stats)
		if err != nil {
			return err
		}
		batch = append(batch, storage.PostingInsert{
			Posting: buildPosting(rec, result, p.source),
			Tags:    result.Tags,
		})
		if len(batch) >= p.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

// enrich runs one record through the configured enhancer, or straight
// through the fallback once the AI budget is spent.
func (p *Pipeline) enrich(ctx context.Context, rec core.RawRecord, stats *Stats) (*enhance.Result, error) {
	req := enhance.Request{
		Title:           rec.Title,
		Company:         rec.Company,
		DescriptionHTML: rec.Description,
	}

	enhancer := p.enhancer
	if p.aiLimit > 0 && stats.Enhanced >= p.aiLimit {
		enhancer = p.fallback
	}

	result, err := enhancer.Enhance(ctx, req)
	if err != nil {
		// The configured enhancer should degrade internally; this is the
		// final line of defense.
		p.logger.Warn("enhancer failed, using deterministic path", "title", rec.Title, "error", err)
		result, err = p.fallback.Enhance(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	if result.UsedAI {
		stats.Enhanced++
	} else {
		stats.Fallback++
	}
	return result, nil
}

// buildPosting assembles the durable row for an enriched record.
func buildPosting(rec core.RawRecord, result *enhance.Result, source string) *core.Posting {
	identity := rec.Identity()
	return &core.Posting{
		Id:          core.IDFromContent(identity),
		GUID:        identity,
		Source:      source,
		Title:       rec.Title,
		Company:     rec.Company,
		Summary:     result.Summary,
		BodyHTML:    result.BodyHTML,
		URL:         rec.Link,
		PublishedAt: rec.PublishedAt,
		Slug:        core.PostingSlug(rec.Title, rec.Company),
		TagLine:     core.TagLine(result.Tags),
	}
}
