package enhance

import "context"

// Request carries the raw material for one posting's enrichment.
type Request struct {
	Title           string
	Company         string
	DescriptionHTML string // exactly as the feed carried it
}

// Result is a finished enrichment. BodyHTML is already sanitized.
type Result struct {
	Summary  string   // short plain-text summary
	BodyHTML string   // structured markup, seven named sections
	Tags     []string // normalized, at most 8
	UsedAI   bool
}

// Enhancer produces a publishable summary, body, and tag set for a posting.
// Implementations must be safe for sequential reuse across a run.
type Enhancer interface {
	// Enhance enriches one posting. Implementations backed by an external
	// service may fail; callers wrap them with WithFallback so a failure
	// never reaches the pipeline.
	Enhance(ctx context.Context, req Request) (*Result, error)

	// Close releases resources held by the enhancer.
	Close() error
}
