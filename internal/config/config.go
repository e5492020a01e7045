package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/recallkit/internal/assess"
	"github.com/abhisek/recallkit/internal/coach"
	"github.com/abhisek/recallkit/internal/concepts"
	"github.com/abhisek/recallkit/internal/correspond"
	"github.com/abhisek/recallkit/internal/embed"
	"github.com/abhisek/recallkit/internal/llm"
	"github.com/abhisek/recallkit/internal/logging"
	"github.com/abhisek/recallkit/internal/pipeline"
	"github.com/abhisek/recallkit/internal/questions"
	"github.com/abhisek/recallkit/internal/segment"
	"github.com/abhisek/recallkit/internal/similarity"
)

// EnvPrefix prefixes every environment override, e.g.
// RECALLKIT_SEGMENT_MAXCHARS or RECALLKIT_LLM_PROVIDER.
const EnvPrefix = "RECALLKIT"

// Config is the full application configuration.
type Config struct {
	Segment    segment.Config
	Embed      embed.Config
	Similarity SimilarityConfig
	Concepts   concepts.Config
	Questions  questions.Config
	Correspond correspond.Config
	Assess     assess.Config
	Coach      coach.Config
	LLM        llm.Config
	Logging    logging.Config
	Metrics    MetricsConfig

	// Seed fixes question synthesis. Zero derives it from the document.
	Seed uint64
}

// SimilarityConfig configures the ranker.
type SimilarityConfig struct {
	TopK int
}

// MetricsConfig configures the metrics dump.
type MetricsConfig struct {
	// TextfilePath, when set, receives the registry after each run.
	TextfilePath string
}

// Default returns the configuration assembled from every package's
// defaults.
func Default() Config {
	return Config{
		Segment:    segment.DefaultConfig(),
		Embed:      embed.DefaultConfig(),
		Similarity: SimilarityConfig{TopK: similarity.DefaultK},
		Concepts:   concepts.DefaultConfig(),
		Questions:  questions.DefaultConfig(),
		Correspond: correspond.DefaultConfig(),
		Assess:     assess.DefaultConfig(),
		Coach:      coach.DefaultConfig(),
		LLM:        llm.DefaultConfig(),
		Logging:    logging.DefaultConfig(),
	}
}

// Load reads configuration in increasing priority: defaults, the YAML file,
// then RECALLKIT_* environment variables. A .env file in the working
// directory is loaded into the environment first. With an empty path the
// file is looked up as recallkit.yaml in the working directory and in
// $HOME/.config/recallkit; a missing file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("recallkit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "recallkit"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, "", reflect.ValueOf(Default()))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	discoverKeys(&cfg, os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if err := c.Embed.Validate(); err != nil {
		return err
	}
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if c.Segment.MaxChars < 0 {
		return fmt.Errorf("segment.maxchars must not be negative, got %d", c.Segment.MaxChars)
	}
	if c.Similarity.TopK < 0 {
		return fmt.Errorf("similarity.topk must not be negative, got %d", c.Similarity.TopK)
	}
	if err := c.Concepts.Validate(); err != nil {
		return err
	}
	return c.Questions.Validate()
}

// Pipeline extracts the pipeline configuration.
func (c *Config) Pipeline() pipeline.Config {
	return pipeline.Config{
		Segment:    c.Segment,
		Concepts:   c.Concepts,
		Questions:  c.Questions,
		Correspond: c.Correspond,
		TopK:       c.Similarity.TopK,
		Seed:       c.Seed,
	}
}

// discoverKeys fills unset API keys from the providers' conventional
// variables and selects an LLM provider when none is configured.
func discoverKeys(cfg *Config, getenv func(string) string) {
	fill := func(dst *string, name string) {
		if *dst == "" {
			*dst = getenv(name)
		}
	}

	fill(&cfg.Embed.OpenAI.APIKey, "OPENAI_API_KEY")
	fill(&cfg.Embed.Gemini.APIKey, "GEMINI_API_KEY")

	fill(&cfg.LLM.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	fill(&cfg.LLM.OpenAI.APIKey, "OPENAI_API_KEY")
	fill(&cfg.LLM.Gemini.APIKey, "GEMINI_API_KEY")
	fill(&cfg.LLM.OpenRouter.APIKey, "OPENROUTER_API_KEY")

	cfg.LLM, _ = llm.Discover(cfg.LLM, getenv)
}

// setDefaults registers every leaf field of val under its lower-cased
// dotted path so AutomaticEnv can override keys absent from the file.
func setDefaults(v *viper.Viper, prefix string, val reflect.Value) {
	t := val.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		key := strings.ToLower(field.Name)
		if prefix != "" {
			key = prefix + "." + key
		}

		fv := val.Field(i)
		if fv.Kind() == reflect.Struct {
			setDefaults(v, key, fv)
			continue
		}
		v.SetDefault(key, fv.Interface())
	}
}
