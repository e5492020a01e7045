package embed

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/recallkit/internal/segment"
)

// FallbackEncoder bounds the primary encoder with a deadline and re-encodes
// the whole batch with the fallback when the primary fails.
type FallbackEncoder struct {
	primary  Encoder
	fallback Encoder
	timeout  time.Duration
	logger   *zap.Logger

	// OnFallback, when set, is called each time the fallback is used.
	OnFallback func(err error)

	mu        sync.Mutex
	lastModel string
}

// WithFallback wraps primary. A zero timeout means no deadline.
func WithFallback(primary, fallback Encoder, timeout time.Duration, logger *zap.Logger) *FallbackEncoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackEncoder{primary: primary, fallback: fallback, timeout: timeout, logger: logger}
}

func (f *FallbackEncoder) Encode(ctx context.Context, chunks []segment.Chunk) ([]EmbeddedChunk, error) {
	pctx := ctx
	if f.timeout > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	out, err := f.primary.Encode(pctx, chunks)
	if err == nil {
		f.setLast(f.primary.ModelID())
		return out, nil
	}

	// The caller gave up; don't mask that with fallback vectors.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	f.logger.Warn("primary encoder failed, using fallback",
		zap.String("primary", f.primary.ModelID()),
		zap.String("fallback", f.fallback.ModelID()),
		zap.Int("chunks", len(chunks)),
		zap.Error(err))
	if f.OnFallback != nil {
		f.OnFallback(err)
	}

	out, err = f.fallback.Encode(ctx, chunks)
	if err == nil {
		f.setLast(f.fallback.ModelID())
	}
	return out, err
}

// ModelID reports the model that produced the most recent batch, or the
// primary model before any call.
func (f *FallbackEncoder) ModelID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastModel != "" {
		return f.lastModel
	}
	return f.primary.ModelID()
}

func (f *FallbackEncoder) setLast(id string) {
	f.mu.Lock()
	f.lastModel = id
	f.mu.Unlock()
}

// Close releases the primary encoder's resources.
func (f *FallbackEncoder) Close() error {
	if c, ok := f.primary.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
