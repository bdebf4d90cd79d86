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


package feed

import "errors"

var (
	// ErrFetchFailed indicates the feed could not be retrieved at all.
	ErrFetchFailed = errors.New("feed fetch failed")

	// ErrBadStatus indicates the feed endpoint answered with a non-2xx status.
	ErrBadStatus = errors.New("feed returned non-success status")

	// ErrStreamFailed indicates the byte stream broke mid-read. Unlike a
	// malformed document, a broken transport is fatal to the run.
	ErrStreamFailed = errors.New("feed stream failed")
)
