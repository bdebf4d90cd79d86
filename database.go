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


// Package jobwire ties the pieces together: a Database owns the durable
// store, the enrichment path, and the extractor, and hands out configured
// pipelines, searchers, and retaggers.
package jobwire

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/jobwire/enhance"
	"github.com/poiesic/jobwire/enhance/openai"
	"github.com/poiesic/jobwire/extract"
	"github.com/poiesic/jobwire/feed"
	"github.com/poiesic/jobwire/ingestion"
	"github.com/poiesic/jobwire/retag"
	"github.com/poiesic/jobwire/search"
	"github.com/poiesic/jobwire/storage"
	"github.com/poiesic/jobwire/storage/badger"
)

// Database is the assembled system around one durable store.
type Database struct {
	backend     *badger.Backend
	postingRepo storage.PostingRepository
	tagRepo     storage.TagRepository
	enhancer    enhance.Enhancer
	fallback    enhance.Enhancer
	extractor   *extract.Extractor
	profession  string
	logger      *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiEnabled     bool
	enhanceConfig *enhance.Config
	siteURL       string
	inMemory      bool
}

// WithAI enables the AI enrichment path with the given backend settings.
func WithAI(config *enhance.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiEnabled = true
		o.enhanceConfig = config
	}
}

// WithProfession sets the target profession. Default is the enhance
// package's default.
func WithProfession(profession string) DatabaseOption {
	return func(o *databaseOptions) {
		if o.enhanceConfig == nil {
			o.enhanceConfig = enhance.DefaultConfig()
		}
		o.enhanceConfig.Profession = profession
	}
}

// WithSiteURL sets the site URL used for country inference.
func WithSiteURL(siteURL string) DatabaseOption {
	return func(o *databaseOptions) {
		o.siteURL = siteURL
	}
}

// WithInMemoryStore opens an in-memory store, for tests and dry runs.
func WithInMemoryStore() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens the store at filePath and assembles the system around
// it. When AI is not enabled, every enrichment uses the deterministic
// fallback; when it is, AI failures degrade to the same fallback.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		enhanceConfig: enhance.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.enhanceConfig == nil {
		options.enhanceConfig = enhance.DefaultConfig()
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	postingRepo, err := badger.NewPostingRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	tagRepo, err := badger.NewTagRepository(backend)
	if err != nil {
		postingRepo.Close()
		backend.Close()
		return nil, err
	}

	profession := options.enhanceConfig.Profession
	fallback := enhance.NewFallback(profession)

	var enhancer enhance.Enhancer = fallback
	if options.aiEnabled {
		aiEnhancer, err := openai.NewEnhancer(options.enhanceConfig)
		if err != nil {
			tagRepo.Close()
			postingRepo.Close()
			backend.Close()
			return nil, err
		}
		enhancer = enhance.WithFallback(aiEnhancer, fallback)
	}

	return &Database{
		backend:     backend,
		postingRepo: postingRepo,
		tagRepo:     tagRepo,
		enhancer:    enhancer,
		fallback:    fallback,
		extractor:   extract.New(options.siteURL),
		profession:  profession,
		logger:      slog.Default(),
	}, nil
}

// Close shuts the system down in reverse assembly order.
func (db *Database) Close() error {
	if err := db.enhancer.Close(); err != nil {
		db.logger.Error("error closing enhancer", "err", err)
	}

	if err := db.tagRepo.Close(); err != nil {
		db.logger.Error("error closing tag repository", "err", err)
		return err
	}
	if err := db.postingRepo.Close(); err != nil {
		db.logger.Error("error closing posting repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// PostingRepository exposes the posting store.
func (db *Database) PostingRepository() storage.PostingRepository {
	return db.postingRepo
}

// TagRepository exposes the tag store.
func (db *Database) TagRepository() storage.TagRepository {
	return db.tagRepo
}

// NewPipeline builds an ingestion pipeline over this database that fetches
// feedURL and filters with the given keyword vocabulary.
func (db *Database) NewPipeline(feedURL, keywords string, opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	fetcher := feed.NewFetcher(db.logger)
	fetch := func(ctx context.Context) (io.ReadCloser, error) {
		return fetcher.Fetch(ctx, feedURL)
	}
	return ingestion.NewPipeline(fetch, feed.NewFilter(keywords), db.enhancer, db.fallback, db.postingRepo, opts...)
}

// NewSearcher builds the read-side query surface over this database.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.postingRepo, db.tagRepo, db.extractor, opts...)
}

// NewRetagger builds the tag maintenance pass over this database.
func (db *Database) NewRetagger(config *retag.Config) (*retag.Retagger, error) {
	return retag.NewRetagger(db.postingRepo, db.profession, config)
}
