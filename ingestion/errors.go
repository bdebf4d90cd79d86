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

import "errors"

var (
	// ErrFetcherRequired is returned when no fetch function is provided.
	ErrFetcherRequired = errors.New("fetch function is required")

	// ErrFilterRequired is returned when no relevance filter is provided.
	ErrFilterRequired = errors.New("relevance filter is required")

	// ErrEnhancerRequired is returned when no enhancer is provided.
	ErrEnhancerRequired = errors.New("enhancer is required")

	// ErrFallbackRequired is returned when no deterministic fallback is provided.
	ErrFallbackRequired = errors.New("fallback enhancer is required")

	// ErrRepositoryRequired is returned when no posting repository is provided.
	ErrRepositoryRequired = errors.New("posting repository is required")
)
