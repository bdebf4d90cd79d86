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

import "errors"

var (
	// ErrPostingRepositoryRequired is returned when no posting repository is provided.
	ErrPostingRepositoryRequired = errors.New("posting repository is required")

	// ErrTagRepositoryRequired is returned when no tag repository is provided.
	ErrTagRepositoryRequired = errors.New("tag repository is required")

	// ErrExtractorRequired is returned when no fact extractor is provided.
	ErrExtractorRequired = errors.New("fact extractor is required")
)
