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


// Package mock provides a test double for the enhance.Enhancer interface.
package mock

import (
	"context"
	"strings"

	"github.com/poiesic/jobwire/enhance"
)

// MockEnhancer implements enhance.Enhancer with configurable behavior.
// Note: returns concrete type so tests can assert on call counts.
type MockEnhancer struct {
	// EnhanceFunc overrides the default behavior when set.
	EnhanceFunc func(ctx context.Context, req enhance.Request) (*enhance.Result, error)

	callCount int
}

var _ enhance.Enhancer = (*MockEnhancer)(nil)

// NewMockEnhancer creates a mock enhancer with default behavior.
func NewMockEnhancer() *MockEnhancer {
	return &MockEnhancer{}
}

// Enhance returns a canned enrichment derived from the title, or delegates
// to EnhanceFunc when one is set.
func (m *MockEnhancer) Enhance(ctx context.Context, req enhance.Request) (*enhance.Result, error) {
	m.callCount++

	if m.EnhanceFunc != nil {
		return m.EnhanceFunc(ctx, req)
	}

	return &enhance.Result{
		Summary:  "Mock summary for " + req.Title,
		BodyHTML: "<h3>About the role</h3>\n<p>" + req.Title + "</p>",
		Tags:     []string{"mock", strings.ToLower(req.Title)},
		UsedAI:   true,
	}, nil
}

// Close releases resources. The mock holds none.
func (m *MockEnhancer) Close() error {
	return nil
}

// CallCount returns how many times Enhance was invoked.
func (m *MockEnhancer) CallCount() int {
	return m.callCount
}
