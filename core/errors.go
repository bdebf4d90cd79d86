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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidPosting indicates a Posting failed validation.
	ErrInvalidPosting = errors.New("invalid posting")

	// ErrInvalidTag indicates a Tag failed validation.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrEmptyIdentity indicates the posting identity field is empty.
	ErrEmptyIdentity = errors.New("posting identity cannot be empty")

	// ErrEmptyTitle indicates the posting Title field is empty.
	ErrEmptyTitle = errors.New("posting title cannot be empty")

	// ErrEmptySlug indicates the posting Slug field is empty.
	ErrEmptySlug = errors.New("posting slug cannot be empty")

	// ErrEmptyTagName indicates the tag Name field is empty.
	ErrEmptyTagName = errors.New("tag name cannot be empty")
)
