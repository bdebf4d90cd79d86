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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/jobwire"
	"github.com/poiesic/jobwire/config"
	"github.com/poiesic/jobwire/enhance"
	"github.com/poiesic/jobwire/ingestion"
	"github.com/poiesic/jobwire/retag"
)

func main() {
	app := &cli.App{
		Name:  "jobwire",
		Usage: "Job feed ingestion and enrichment pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file (default: jobwire.yaml in the working directory)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Fetch the feed once, ingest matching postings, and exit",
				Action: runCommand,
			},
			{
				Name:   "watch",
				Usage:  "Run the ingestion on a cron schedule until interrupted",
				Action: watchCommand,
			},
			{
				Name:   "retag",
				Usage:  "Recompute tags for every stored posting",
				Action: retagCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "page-size",
						Usage: "Number of postings fetched per page",
						Value: retag.DefaultPageSize,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size (0 = half the CPUs)",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts per posting",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Print the posting total and the popular tags",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "min-count",
						Usage: "Minimum postings per tag to list it",
						Value: 2,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.ValidateForRun(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := newPipeline(db, cfg)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	stats, err := pipeline.Run(c.Context)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Seen: %d\n", stats.Seen)
	fmt.Fprintf(os.Stderr, "Matched: %d\n", stats.Matched)
	fmt.Fprintf(os.Stderr, "Skipped: %d\n", stats.Skipped)
	fmt.Fprintf(os.Stderr, "Inserted: %d\n", stats.Inserted)
	fmt.Fprintf(os.Stderr, "Enhanced: %d\n", stats.Enhanced)
	fmt.Fprintf(os.Stderr, "Fallback: %d\n", stats.Fallback)
	return nil
}

func watchCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.ValidateForRun(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := newPipeline(db, cfg)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOnce := func() {
		stats, err := pipeline.Run(ctx)
		if err != nil {
			slog.Error("scheduled ingestion failed", "err", err)
			return
		}
		slog.Info("scheduled ingestion finished",
			"seen", stats.Seen,
			"matched", stats.Matched,
			"inserted", stats.Inserted)
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Schedule, runOnce); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", cfg.Schedule, err)
	}

	// One run at startup, then on schedule.
	runOnce()
	scheduler.Start()
	slog.Info("watching feed", "schedule", cfg.Schedule, "feed_url", cfg.FeedURL)

	<-ctx.Done()
	slog.Info("shutting down")
	stopCtx := scheduler.Stop()
	<-stopCtx.Done()
	return nil
}

func retagCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	retagConfig := &retag.Config{
		PageSize:   c.Int("page-size"),
		Workers:    c.Int("workers"),
		MaxRetries: c.Int("max-retries"),
		RetryDelay: c.Duration("retry-delay"),
	}
	if retagConfig.PageSize <= 0 {
		return fmt.Errorf("page-size must be greater than 0")
	}
	if retagConfig.Workers <= 0 {
		retagConfig.Workers = retag.DefaultConfig().Workers
	}
	if retagConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	retagger, err := db.NewRetagger(retagConfig)
	if err != nil {
		return fmt.Errorf("failed to create retagger: %w", err)
	}
	defer retagger.Close()

	added, err := retagger.Run(c.Context)
	if err != nil {
		return fmt.Errorf("retagging failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Associations added: %d\n", added)
	return nil
}

func statsCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	ctx := context.Background()
	total, err := searcher.Total(ctx)
	if err != nil {
		return fmt.Errorf("failed to count postings: %w", err)
	}
	fmt.Printf("Postings: %d\n", total)

	popular, err := searcher.PopularTags(ctx, c.Int("min-count"))
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}
	for _, tc := range popular {
		fmt.Printf("%6d  %s\n", tc.Count, tc.Tag.Name)
	}
	return nil
}

func openDatabase(cfg *config.Config) (*jobwire.Database, error) {
	opts := []jobwire.DatabaseOption{
		jobwire.WithSiteURL(cfg.SiteURL),
	}
	if cfg.AI.Enabled {
		opts = append(opts, jobwire.WithAI(enhance.NewConfig(
			enhance.WithHost(cfg.AI.Host),
			enhance.WithModel(cfg.AI.Model),
			enhance.WithProfession(cfg.Profession),
		)))
	}
	opts = append(opts, jobwire.WithProfession(cfg.Profession))

	db, err := jobwire.NewDatabase(cfg.DBPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func newPipeline(db *jobwire.Database, cfg *config.Config) (*ingestion.Pipeline, error) {
	opts := []ingestion.Option{}
	if cfg.MaxPostings > 0 {
		opts = append(opts, ingestion.WithMaxPostings(cfg.MaxPostings))
	}
	if cfg.AI.Enabled && cfg.AI.Limit > 0 {
		opts = append(opts, ingestion.WithAILimit(cfg.AI.Limit))
	}
	return db.NewPipeline(cfg.FeedURL, cfg.Keywords, opts...)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
