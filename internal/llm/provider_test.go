package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMockProvider_FIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockJSON(map[string]int{"b": 2}),
	)

	first, err := mock.Generate(context.Background(), Request{System: "sys"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if string(first.Content) != `{"a":1}` || first.Usage.InputTokens != 10 {
		t.Errorf("first = %s %+v", first.Content, first.Usage)
	}

	second, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if string(second.Content) != `{"b":2}` {
		t.Errorf("second = %s, want {\"b\":2}", second.Content)
	}

	if mock.CallCount() != 2 || mock.Calls[0].System != "sys" {
		t.Errorf("calls = %d, first system %q", mock.CallCount(), mock.Calls[0].System)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var un *ErrProviderUnavailable
	if !errors.As(err, &un) {
		t.Errorf("empty queue error = %T, want *ErrProviderUnavailable", err)
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockJSON(map[string]any{"feedback": "x"}))

	_, err := mock.Generate(context.Background(), Request{Schema: adviceTestSchema()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("Generate() error = %T (%v), want *ErrInvalidResponse", err, err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Errorf("PurposeFrom() = %q, want unknown", p)
	}
	if p := PurposeFrom(WithPurpose(ctx, "coach")); p != "coach" {
		t.Errorf("PurposeFrom() = %q, want coach", p)
	}
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(slowProvider{}, 10*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Generate() error = %v, want DeadlineExceeded", err)
	}

	if got := WithTimeout(slowProvider{}, 0); got != (slowProvider{}) {
		t.Errorf("WithTimeout(0) wrapped the provider")
	}
}

func TestWithLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`), Usage: Usage{InputTokens: 3, OutputTokens: 4}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
	)
	p := WithLogging(mock, ProviderMock, zap.New(core))
	ctx := WithPurpose(context.Background(), "coach")

	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("Generate() error = nil, want rate limit")
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("log entries = %d, want 2", len(entries))
	}
	if entries[0].Level != zapcore.InfoLevel || entries[0].ContextMap()["purpose"] != "coach" {
		t.Errorf("success entry = %v %v", entries[0].Level, entries[0].ContextMap())
	}
	if entries[0].ContextMap()["output_tokens"] != int64(4) {
		t.Errorf("output_tokens = %v, want 4", entries[0].ContextMap()["output_tokens"])
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("failure level = %v, want warn", entries[1].Level)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled", Config{}, false},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "k"}}, false},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"unknown provider", Config{Provider: "carrier-pigeon"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		preset   string
		want     string
		wantFind bool
	}{
		{"nothing set", nil, "", "", false},
		{"gemini wins", map[string]string{"GEMINI_API_KEY": "g", "OPENAI_API_KEY": "o"}, "", ProviderGemini, true},
		{"openai before anthropic", map[string]string{"OPENAI_API_KEY": "o", "ANTHROPIC_API_KEY": "a"}, "", ProviderOpenAI, true},
		{"openrouter last", map[string]string{"OPENROUTER_API_KEY": "r"}, "", ProviderOpenRouter, true},
		{"explicit provider kept", map[string]string{"GEMINI_API_KEY": "g"}, ProviderMock, ProviderMock, true},
		{"none stays disabled", map[string]string{"GEMINI_API_KEY": "g"}, ProviderNone, ProviderNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Provider = tt.preset

			got, found := Discover(cfg, func(k string) string { return tt.env[k] })
			if found != tt.wantFind || got.Provider != tt.want {
				t.Fatalf("Discover() = (%q, %v), want (%q, %v)", got.Provider, found, tt.want, tt.wantFind)
			}
		})
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), DefaultConfig(), nil)
	if err != nil || p != nil {
		t.Fatalf("NewProvider(disabled) = (%v, %v), want (nil, nil)", p, err)
	}

	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenRouter
	if _, err := NewProvider(context.Background(), cfg, nil); err == nil {
		t.Error("NewProvider(openrouter without key) error = nil")
	}

	cfg.OpenRouter.APIKey = "sk-or"
	p, err = NewProvider(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("NewProvider(openrouter) error = %v", err)
	}
	if p.ModelID() != "google/gemini-2.0-flash-001" {
		t.Errorf("ModelID() = %q", p.ModelID())
	}
}
