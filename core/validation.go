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

import "fmt"

// ValidatePosting validates a Posting according to domain rules.
//
// Validation rules:
//   - GUID (identity) must not be empty
//   - Title must not be empty
//   - Slug must not be empty
//
// NOT validated:
//   - Summary/BodyHTML (enrichment may legitimately produce boilerplate)
//   - PublishedAt (the parser substitutes the current time when absent)
func ValidatePosting(p *Posting) error {
	if p == nil {
		return fmt.Errorf("%w: posting is nil", ErrInvalidPosting)
	}
	if p.GUID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPosting, ErrEmptyIdentity)
	}
	if p.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPosting, ErrEmptyTitle)
	}
	if p.Slug == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPosting, ErrEmptySlug)
	}
	return nil
}

// ValidateTag validates a Tag according to domain rules.
func ValidateTag(t *Tag) error {
	if t == nil {
		return fmt.Errorf("%w: tag is nil", ErrInvalidTag)
	}
	if t.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTag, ErrEmptyTagName)
	}
	if t.Slug == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTag, ErrEmptySlug)
	}
	return nil
}
