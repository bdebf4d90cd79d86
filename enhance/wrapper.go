package enhance

import (
	"context"
	"log/slog"
)

// degrading wraps a fragile enhancer so any failure falls through to the
// deterministic path. The pipeline only ever sees a degrading enhancer, which
// is why AI failure can never abort a run.
type degrading struct {
	primary  Enhancer
	fallback Enhancer
	logger   *slog.Logger
}

var _ Enhancer = (*degrading)(nil)

// WithFallback wraps primary so every error from it degrades transparently
// to the fallback enhancer.
func WithFallback(primary, fallback Enhancer) Enhancer {
	return &degrading{
		primary:  primary,
		fallback: fallback,
		logger:   slog.Default().With("component", "enhancer"),
	}
}

func (d *degrading) Enhance(ctx context.Context, req Request) (*Result, error) {
	result, err := d.primary.Enhance(ctx, req)
	if err == nil {
		return result, nil
	}
	d.logger.Warn("enrichment degraded to deterministic path", "title", req.Title, "error", err)
	return d.fallback.Enhance(ctx, req)
}

func (d *degrading) Close() error {
	if err := d.primary.Close(); err != nil {
		d.fallback.Close()
		return err
	}
	return d.fallback.Close()
}
