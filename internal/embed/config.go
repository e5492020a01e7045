package embed

import (
	"fmt"
	"time"
)

// Strategy names accepted by Resolve.
const (
	StrategyAuto      = "auto"
	StrategyONNX      = "onnx"
	StrategyOpenAI    = "openai"
	StrategyGemini    = "gemini"
	StrategySynthetic = "synthetic"
)

// Config selects and configures the encoder strategy.
type Config struct {
	// Strategy is one of "auto", "onnx", "openai", "gemini", "synthetic".
	// "auto" tries the local model, then remote APIs with keys, then the
	// synthetic encoder.
	Strategy string

	// Seed and Dimension configure the synthetic encoder.
	Seed      uint64
	Dimension int

	// Timeout bounds a model-backed Encode call. On expiry the batch is
	// re-encoded synthetically. Zero disables the deadline.
	Timeout time.Duration

	ONNX   ONNXConfig
	OpenAI OpenAIConfig
	Gemini GeminiConfig
	Retry  RetryConfig
}

// ONNXConfig locates a local sentence-transformer export.
type ONNXConfig struct {
	ModelPath     string
	TokenizerPath string

	// LibraryPath points at libonnxruntime. Empty uses the loader default.
	LibraryPath string

	// ModelName is reported as the encoder's model ID.
	ModelName string
}

// OpenAIConfig configures the OpenAI embeddings backend.
type OpenAIConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	Dimensions int
}

// GeminiConfig configures the Gemini embeddings backend.
type GeminiConfig struct {
	APIKey     string
	Model      string
	Dimensions int

	// BaseURL overrides the Gemini API endpoint.
	BaseURL string
}

// RetryConfig configures retries for remote backends.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the standard encoder configuration.
func DefaultConfig() Config {
	return Config{
		Strategy:  StrategyAuto,
		Seed:      42,
		Dimension: 384,
		Timeout:   60 * time.Second,
		ONNX: ONNXConfig{
			ModelPath:     "models/all-MiniLM-L6-v2/model.onnx",
			TokenizerPath: "models/all-MiniLM-L6-v2/tokenizer.json",
			ModelName:     "all-MiniLM-L6-v2",
		},
		OpenAI: OpenAIConfig{
			Model:      "text-embedding-3-small",
			Dimensions: 384,
		},
		Gemini: GeminiConfig{
			Model:      "gemini-embedding-001",
			Dimensions: 384,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// Validate rejects unknown strategies.
func (c Config) Validate() error {
	switch c.Strategy {
	case StrategyAuto, StrategyONNX, StrategyOpenAI, StrategyGemini, StrategySynthetic:
		return nil
	default:
		return fmt.Errorf("unknown encoder strategy: %q", c.Strategy)
	}
}
