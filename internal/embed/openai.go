package embed

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIBackend calls the OpenAI embeddings endpoint, or any compatible
// API reachable through BaseURL.
type OpenAIBackend struct {
	client     *openai.Client
	model      string
	dimensions int
}

// NewOpenAIBackend creates an embeddings backend. It returns
// ErrModelUnavailable when no API key is configured.
func NewOpenAIBackend(cfg OpenAIConfig) (*OpenAIBackend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: %w: API key is required", ErrModelUnavailable)
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &OpenAIBackend{
		client:     openai.NewClientWithConfig(config),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

func (b *OpenAIBackend) ModelID() string {
	return b.model
}

func (b *OpenAIBackend) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	resp, err := b.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      texts,
		Model:      openai.EmbeddingModel(b.model),
		Dimensions: b.dimensions,
	})
	if err != nil {
		return nil, mapOpenAIError(err)
	}

	out := make([][]float64, len(texts))
	for i, d := range resp.Data {
		idx := d.Index
		if idx < 0 || idx >= len(out) {
			idx = i
		}
		out[idx] = toFloat64(d.Embedding)
	}
	for i, v := range out {
		if v == nil {
			return nil, &ErrBatchMismatch{Want: len(texts), Got: i}
		}
	}
	return out, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		transient := apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
		return &ErrBackend{Backend: "openai", Transient: transient, Err: err}
	}
	return &ErrBackend{Backend: "openai", Transient: true, Err: err}
}
