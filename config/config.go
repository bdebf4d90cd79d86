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


// Package config loads runtime configuration from, in override order: built
// in defaults, an optional jobwire.yaml, and JOBWIRE_-prefixed environment
// variables (optionally via a .env file).
package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AIConfig controls the AI enrichment path.
type AIConfig struct {
	// Enabled turns the AI path on. Off, every posting uses the
	// deterministic fallback.
	Enabled bool

	// Host is an OpenAI-compatible chat API base URL.
	Host string

	// Model is the chat model identifier.
	Model string

	// Limit caps AI-enriched records per run. 0 = unlimited.
	Limit int
}

// Config is the full runtime configuration.
type Config struct {
	// DBPath is where the durable store lives.
	DBPath string

	// FeedURL is the job feed to ingest.
	FeedURL string

	// SiteURL is this site's own URL, used only for country inference.
	SiteURL string

	// Profession is the target profession name.
	Profession string

	// Keywords is the comma-separated relevance vocabulary.
	Keywords string

	// MaxPostings bounds retention; 0 disables pruning.
	MaxPostings int

	// CountTTL is how long a cached posting total may serve.
	CountTTL time.Duration

	// Schedule is the cron expression for watch mode.
	Schedule string

	AI AIConfig
}

// Load reads configuration. A missing config file is fine; a malformed one
// is not. When path is empty, jobwire.yaml is looked for in the working
// directory.
func Load(path string) (*Config, error) {
	// Environment variables may come from a .env file; its absence is normal.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded environment from .env file")
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("jobwire")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("JOBWIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db_path", "jobwire.db")
	v.SetDefault("feed_url", "")
	v.SetDefault("site_url", "")
	v.SetDefault("profession", "chauffeur")
	v.SetDefault("keywords", "")
	v.SetDefault("max_postings", 0)
	v.SetDefault("count_ttl", "300s")
	v.SetDefault("schedule", "0 */6 * * *")
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.host", "http://localhost:11434/v1")
	v.SetDefault("ai.model", "qwen2.5:3b")
	v.SetDefault("ai.limit", 0)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		DBPath:      v.GetString("db_path"),
		FeedURL:     v.GetString("feed_url"),
		SiteURL:     v.GetString("site_url"),
		Profession:  v.GetString("profession"),
		Keywords:    v.GetString("keywords"),
		MaxPostings: v.GetInt("max_postings"),
		CountTTL:    v.GetDuration("count_ttl"),
		Schedule:    v.GetString("schedule"),
		AI: AIConfig{
			Enabled: v.GetBool("ai.enabled"),
			Host:    v.GetString("ai.host"),
			Model:   v.GetString("ai.model"),
			Limit:   v.GetInt("ai.limit"),
		},
	}, nil
}

// ValidateForRun checks the fields an ingestion run depends on.
func (c *Config) ValidateForRun() error {
	if strings.TrimSpace(c.FeedURL) == "" {
		return errors.New("feed_url is required")
	}
	if strings.TrimSpace(c.Keywords) == "" {
		return errors.New("keywords vocabulary is required")
	}
	if strings.TrimSpace(c.Profession) == "" {
		return errors.New("profession is required")
	}
	return nil
}
