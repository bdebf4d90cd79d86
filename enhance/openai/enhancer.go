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


package openai

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/jobwire/core"
	"github.com/poiesic/jobwire/enhance"
)

// Enhancer implements enhance.Enhancer using an OpenAI-compatible chat API.
type Enhancer struct {
	client llms.Model
	config *enhance.Config
	logger *slog.Logger
}

var _ enhance.Enhancer = (*Enhancer)(nil)

// NewEnhancer creates an AI-backed enhancer. The config is normalized and
// validated before use.
//
// Returns enhance.Enhancer (not *Enhancer) to keep callers decoupled from
// the OpenAI-specific implementation.
func NewEnhancer(config *enhance.Config) (enhance.Enhancer, error) {
	config.Normalize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// "none" satisfies local OpenAI-compatible services that skip auth.
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Enhancer{
		client: client,
		config: config,
		logger: slog.Default().With("component", "openai-enhancer"),
	}, nil
}

// Enhance sends the posting to the model and parses its three-block answer.
// Transport and contract failures surface as errors; the caller's fallback
// wrapper turns them into deterministic enrichment.
func (e *Enhancer) Enhance(ctx context.Context, req enhance.Request) (*enhance.Result, error) {
	plain := enhance.PlainText(req.DescriptionHTML)
	if len(plain) > e.config.MaxInputChars {
		plain = plain[:e.config.MaxInputChars]
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(buildSystemPrompt(e.config.Profession))},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(buildUserPrompt(req.Title, req.Company, plain))},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.2))
	if err != nil {
		e.logger.Error("failed to generate content", "title", req.Title, "err", err)
		return nil, err
	}
	if len(response.Choices) < 1 {
		return nil, errors.New("model returned no choices")
	}

	result := parseResponse(response.Choices[0].Content)
	if result.summary == "" {
		return nil, errors.New("model answer yielded no usable summary")
	}

	tags := result.tags
	if tags == nil {
		// Malformed tag block: keyword extraction salvages the tag set.
		e.logger.Debug("tag block unusable, using keyword extraction", "title", req.Title)
		tags = enhance.ExtractTags(req.Title, req.Company, plain, e.config.Profession)
	} else {
		// Profession first so the tag cap can never drop it.
		tags = core.NormalizeTags(append([]string{e.config.Profession}, tags...))
	}

	return &enhance.Result{
		Summary:  result.summary,
		BodyHTML: enhance.SanitizeBody(result.body),
		Tags:     tags,
		UsedAI:   true,
	}, nil
}

// Close releases resources held by the enhancer. The underlying client needs
// no explicit cleanup.
func (e *Enhancer) Close() error {
	return nil
}
