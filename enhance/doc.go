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


// Package enhance turns a raw feed description into a publishable posting:
// a short plain-text summary, a structured sanitized HTML body, and a tag
// set.
//
// The package defines the Enhancer interface and a deterministic Fallback
// implementation which is always available. The enhance/openai subpackage
// provides an AI-backed implementation; WithFallback wraps it so any AI
// failure degrades transparently to the deterministic path. Enrichment must
// never abort an ingestion run.
//
// Both paths share the same post-processing invariant: body markup passes
// through an HTML sanitizer and a document-wrapper stripper before it is
// considered final.
package enhance
