package embed

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// GeminiBackend calls the Gemini embedContent API.
type GeminiBackend struct {
	client     *genai.Client
	model      string
	dimensions int32
}

// NewGeminiBackend creates an embeddings backend. It returns
// ErrModelUnavailable when no API key is configured.
func NewGeminiBackend(ctx context.Context, cfg GeminiConfig) (*GeminiBackend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w: API key is required", ErrModelUnavailable)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiBackend{
		client:     client,
		model:      cfg.Model,
		dimensions: int32(cfg.Dimensions),
	}, nil
}

func (b *GeminiBackend) ModelID() string {
	return b.model
}

func (b *GeminiBackend) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(t, genai.RoleUser)
	}

	config := &genai.EmbedContentConfig{TaskType: "SEMANTIC_SIMILARITY"}
	if b.dimensions > 0 {
		dims := b.dimensions
		config.OutputDimensionality = &dims
	}

	resp, err := b.client.Models.EmbedContent(ctx, b.model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, &ErrBatchMismatch{Want: len(texts), Got: len(resp.Embeddings)}
	}

	out := make([][]float64, len(texts))
	for i, e := range resp.Embeddings {
		out[i] = toFloat64(e.Values)
	}
	return out, nil
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		transient := apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
		return &ErrBackend{Backend: "gemini", Transient: transient, Err: err}
	}
	return &ErrBackend{Backend: "gemini", Transient: true, Err: err}
}
