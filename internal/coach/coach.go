package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/abhisek/recallkit/internal/assess"
	"github.com/abhisek/recallkit/internal/llm"
	"github.com/abhisek/recallkit/internal/questions"
)

// ErrDisabled is returned when no provider is configured.
var ErrDisabled = errors.New("coach is not configured")

// Config holds generation parameters for coaching requests.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.3,
	}
}

// Input is what the coach sees: the question with its source snippet,
// the learner's answer, and the heuristic assessment when available.
type Input struct {
	Question   questions.Question
	Answer     string
	Assessment *assess.Assessment
}

// Advice is the coach's structured reply.
type Advice struct {
	Feedback      string   `json:"feedback"`
	FollowUp      string   `json:"follow_up"`
	MissingPoints []string `json:"missing_points"`

	// Model is the model that produced the advice.
	Model string `json:"-"`
}

// Coach asks an LLM for feedback on answers. A Coach with a nil provider
// is valid and always returns ErrDisabled.
type Coach struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Coach.
func New(provider llm.Provider, cfg Config) *Coach {
	return &Coach{provider: provider, cfg: cfg}
}

// Enabled reports whether Advise can reach a provider.
func (c *Coach) Enabled() bool {
	return c != nil && c.provider != nil
}

// Advise requests coaching for in.
func (c *Coach) Advise(ctx context.Context, in Input) (*Advice, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	if strings.TrimSpace(in.Answer) == "" {
		return nil, assess.ErrEmptyAnswer
	}

	ctx = llm.WithPurpose(ctx, "coach")

	userMsg, err := buildCoachMessage(in)
	if err != nil {
		return nil, fmt.Errorf("build coach prompt: %w", err)
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      coachSystemPrompt,
		Messages:    llm.UserMessage(userMsg),
		Schema:      AdviceSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("coach request failed: %w", err)
	}

	var advice Advice
	if err := json.Unmarshal(resp.Content, &advice); err != nil {
		return nil, fmt.Errorf("parse coach response: %w", err)
	}
	advice.Model = resp.Model
	advice.Feedback = strings.TrimSpace(advice.Feedback)
	advice.FollowUp = strings.TrimSpace(advice.FollowUp)

	return &advice, nil
}

const coachSystemPrompt = `Eres un tutor que aplica la técnica de Active Recall. Un estudiante respondió una pregunta abierta sobre un texto de estudio.

Instrucciones:
- Evalúa la respuesta solo contra el fragmento de origen; no introduzcas hechos externos.
- Responde en el idioma de la pregunta.
- "feedback": dos o tres frases concretas, empezando por lo que está bien.
- "follow_up": una sola pregunta que obligue a recordar lo que falta, sin revelar la respuesta.
- "missing_points": ideas del fragmento que la respuesta omite; lista vacía si no falta nada.`

var coachUserTemplate = template.Must(template.New("coach").Parse(`Concepto: {{.Question.Concept}}
Dificultad: {{.Question.Difficulty}}
Pregunta: {{.Question.Prompt}}

Fragmento de origen:
{{.Question.ContextSnippet}}

Respuesta del estudiante:
{{.Answer}}
{{with .Assessment}}
Evaluación heurística: {{.Score}}/100 ({{.Tier}})
- menciona el concepto: {{.MentionsConcept}}
- muestra razonamiento: {{.ShowsReasoning}}
- extensión suficiente: {{.SufficientLength}} ({{.WordCount}} palabras)
{{end}}`))

func buildCoachMessage(in Input) (string, error) {
	var buf bytes.Buffer
	if err := coachUserTemplate.Execute(&buf, in); err != nil {
		return "", err
	}
	return buf.String(), nil
}
