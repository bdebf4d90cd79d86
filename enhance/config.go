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


package enhance

import (
	"errors"
	"strings"
)

// Config holds configuration for enrichment backends.
type Config struct {
	// Host is the base URL for an OpenAI-compatible chat API.
	// Example: "http://localhost:11434/v1" for a local server.
	Host string

	// Model is the chat model identifier.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	Model string

	// Profession is the target profession name. It selects the keyword tag
	// vocabulary and is itself appended to every posting's tag set.
	Profession string

	// MaxInputChars caps how much plain text is handed to the AI backend.
	// Default: 6000
	MaxInputChars int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the chat service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the chat model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithProfession sets the target profession name.
func WithProfession(profession string) ConfigOption {
	return func(c *Config) {
		c.Profession = profession
	}
}

// WithMaxInputChars caps the plain text handed to the AI backend.
func WithMaxInputChars(n int) ConfigOption {
	return func(c *Config) {
		c.MaxInputChars = n
	}
}

// DefaultConfig returns a Config with sensible defaults for a local
// OpenAI-compatible service.
func DefaultConfig() *Config {
	return &Config{
		Host:          "http://localhost:11434/v1",
		Model:         "qwen2.5:3b",
		Profession:    "chauffeur",
		MaxInputChars: 6000,
	}
}

// NewConfig creates a Config with default values and applies the provided
// options.
func NewConfig(opts ...ConfigOption) *Config {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return errors.New("host cannot be empty")
	}
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("model cannot be empty")
	}
	if strings.TrimSpace(c.Profession) == "" {
		return errors.New("profession cannot be empty")
	}
	if c.MaxInputChars <= 0 {
		return errors.New("max input chars must be positive")
	}
	return nil
}

// Normalize adjusts the configuration for use: the host gains a /v1 suffix
// when the path is bare, matching what OpenAI-compatible servers expect.
func (c *Config) Normalize() {
	c.Host = strings.TrimRight(strings.TrimSpace(c.Host), "/")
	if !strings.HasSuffix(c.Host, "/v1") {
		c.Host += "/v1"
	}
	c.Profession = strings.ToLower(strings.TrimSpace(c.Profession))
}
