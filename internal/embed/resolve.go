package embed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Resolve selects the encoder once, at configuration time. A model-backed
// strategy whose dependency is missing (model files, API key, runtime
// library) degrades to the synthetic encoder with a warning. Only an
// unknown strategy name is an error.
//
// Model-backed encoders are wrapped with WithFallback so a failure or
// timeout during Encode also degrades to synthetic vectors.
func Resolve(ctx context.Context, cfg Config, logger *zap.Logger) (Encoder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	synthetic := NewSynthetic(SyntheticConfig{Seed: cfg.Seed, Dimension: cfg.Dimension})
	if cfg.Strategy == StrategySynthetic {
		return synthetic, nil
	}

	backend, err := resolveBackend(ctx, cfg, logger)
	if err != nil {
		logger.Warn("embedding model unavailable, using synthetic encoder",
			zap.String("strategy", cfg.Strategy),
			zap.Error(err))
		return synthetic, nil
	}

	logger.Info("embedding model ready",
		zap.String("strategy", cfg.Strategy),
		zap.String("model", backend.ModelID()))

	return WithFallback(NewModelEncoder(backend), synthetic, cfg.Timeout, logger), nil
}

func resolveBackend(ctx context.Context, cfg Config, logger *zap.Logger) (Backend, error) {
	switch cfg.Strategy {
	case StrategyONNX:
		return newONNX(cfg.ONNX)
	case StrategyOpenAI:
		b, err := NewOpenAIBackend(cfg.OpenAI)
		if err != nil {
			return nil, err
		}
		return WithRetry(b, cfg.Retry), nil
	case StrategyGemini:
		b, err := NewGeminiBackend(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
		return WithRetry(b, cfg.Retry), nil
	}

	// auto: local model first, then whichever remote API has a key.
	var errs []error
	local, err := newONNX(cfg.ONNX)
	if err == nil {
		return local, nil
	}
	logger.Debug("onnx backend skipped", zap.Error(err))
	errs = append(errs, err)

	if cfg.OpenAI.APIKey != "" {
		b, err := NewOpenAIBackend(cfg.OpenAI)
		if err == nil {
			return WithRetry(b, cfg.Retry), nil
		}
		errs = append(errs, err)
	}
	if cfg.Gemini.APIKey != "" {
		b, err := NewGeminiBackend(ctx, cfg.Gemini)
		if err == nil {
			return WithRetry(b, cfg.Retry), nil
		}
		errs = append(errs, err)
	}
	errs = append(errs, ErrModelUnavailable)
	return nil, errors.Join(errs...)
}

// newONNX checks the model files before touching the runtime, so a missing
// export is reported as ErrModelUnavailable rather than a loader failure.
func newONNX(cfg ONNXConfig) (Backend, error) {
	for _, p := range []string{cfg.ModelPath, cfg.TokenizerPath} {
		if p == "" {
			return nil, fmt.Errorf("onnx: %w: model path not configured", ErrModelUnavailable)
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("onnx: %w: %v", ErrModelUnavailable, err)
		}
	}
	b, err := NewONNXBackend(cfg)
	if err != nil {
		return nil, fmt.Errorf("onnx: %w: %v", ErrModelUnavailable, err)
	}
	return b, nil
}
