// Package tutor answers geometry questions: it steers the LLM to a
// structured shape/parameters/explanation payload, normalizes the returned
// measurements, and renders a diagram when the user asked for one.
package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Natnat0905/GeoChat/internal/geometry"
	"github.com/Natnat0905/GeoChat/internal/llm"
	"github.com/Natnat0905/GeoChat/internal/render"
)

// Config bounds the LLM request.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig matches the tuning the service shipped with.
func DefaultConfig() Config {
	return Config{MaxTokens: 650, Temperature: 0.4}
}

// Service orchestrates one tutoring exchange end to end.
type Service struct {
	provider llm.Provider
	engine   *geometry.Engine
	renderer *render.Renderer
	config   Config
	log      *zap.Logger
}

// New creates a Service. A nil logger disables logging.
func New(provider llm.Provider, engine *geometry.Engine, renderer *render.Renderer, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MaxTokens == 0 {
		cfg = DefaultConfig()
	}
	return &Service{
		provider: provider,
		engine:   engine,
		renderer: renderer,
		config:   cfg,
		log:      log,
	}
}

// ReplyType distinguishes the two successful answer forms.
type ReplyType string

const (
	ReplyText   ReplyType = "text"
	ReplyVisual ReplyType = "visual"
)

// Reply is the outcome of one exchange. Visual replies carry the rendered
// PNG and the canonical parameter set; text replies only Content.
type Reply struct {
	Type        ReplyType
	Content     string         // text replies
	Explanation string         // visual replies
	PNG         []byte         // visual replies
	Shape       geometry.Shape // visual replies
	Parameters  map[string]any // canonical set, visual replies
}

// tutorOutput is the raw LLM payload before validation.
type tutorOutput struct {
	Shape       string         `json:"shape"`
	Parameters  map[string]any `json:"parameters"`
	Explanation string         `json:"explanation"`
}

const fallbackAnswer = "Let's work through this step by step..."

// Answer runs one exchange: ask the model, clean up the explanation, and
// when the user asked for a drawing, normalize the parameters and render.
// Provider failures return an error; shape and parameter problems return
// typed errors the HTTP layer maps to client errors.
func (s *Service) Answer(ctx context.Context, userMessage string) (*Reply, error) {
	ctx = llm.WithPurpose(ctx, "tutor")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMessage},
		},
		Schema:      AnswerSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	out, structured := parseOutput(resp.Content)
	out.Explanation = EnhanceExplanation(out.Explanation)

	shape, shapeKnown := geometry.ParseShape(out.Shape)
	if !structured || out.Shape == "" || !wantsDiagram(userMessage) {
		content := out.Explanation
		if content == "" {
			content = fallbackAnswer
		}
		return &Reply{Type: ReplyText, Content: content}, nil
	}

	if !shapeKnown {
		return nil, &UnsupportedShapeError{Name: out.Shape}
	}

	params, err := s.engine.Normalize(shape, out.Parameters)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", shape, err)
	}

	resolved, err := geometry.Resolve(shape, params)
	if err != nil {
		return nil, err
	}

	png, err := s.renderer.Render(resolved)
	if err != nil {
		return nil, err
	}

	explanation := out.Explanation
	if rect, ok := resolved.(geometry.Rectangle); ok && rect.IsSquare() {
		explanation = strings.ReplaceAll(explanation, "rectangle", "square")
		explanation += fmt.Sprintf("\nNote: Square with side length %.2f cm.", rect.Width)
	}

	s.log.Info("rendered diagram",
		zap.String("shape", string(shape)),
		zap.Int("png_bytes", len(png)))

	return &Reply{
		Type:        ReplyVisual,
		Explanation: explanation,
		PNG:         png,
		Shape:       shape,
		Parameters:  params.Raw(),
	}, nil
}

// parseOutput reads the LLM payload. The structured path expects the answer
// object; anything else is treated as plain prose, unwrapping a bare JSON
// string when that is what came back.
func parseOutput(content json.RawMessage) (tutorOutput, bool) {
	var out tutorOutput
	if err := json.Unmarshal(content, &out); err == nil {
		return out, true
	}

	var text string
	if err := json.Unmarshal(content, &text); err != nil {
		text = string(content)
	}
	return tutorOutput{Explanation: text}, false
}
