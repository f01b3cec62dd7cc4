// README: Generation and refinement calls against the configured LLM provider.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"voyage/internal/ai"
	"voyage/internal/itinerary"
)

// MaxPromptLength bounds prompts and refinement instructions, in runes.
const MaxPromptLength = 4000

// Planner is what callers need from the generation and refinement clients.
// Service and CachedService both satisfy it.
type Planner interface {
	Generate(ctx context.Context, prompt string) (*itinerary.Itinerary, error)
	Refine(ctx context.Context, current itinerary.Itinerary, instruction string) (*itinerary.Itinerary, error)
}

// Service turns natural-language requests into validated itineraries. It
// keeps no state between calls and never retries.
type Service struct {
	provider ai.LLMProvider
	logger   *slog.Logger
}

func NewService(provider ai.LLMProvider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, logger: logger}
}

// Generate asks the provider for a new itinerary. The result has no id and
// no timestamps.
func (s *Service) Generate(ctx context.Context, prompt string) (*itinerary.Itinerary, error) {
	prompt, err := checkInput(prompt)
	if err != nil {
		return nil, err
	}
	return s.call(ctx, ai.StructuredRequest{
		Task:         ai.TaskGenerate,
		SystemPrompt: ai.GenerationSystemPrompt,
		UserPrompt:   ai.GenerationUserPrompt(prompt),
		Schema:       itinerary.Schema,
	})
}

// Refine asks the provider to apply instruction to current. current is
// trusted and not re-validated. Identity fields on the result are whatever
// the provider produced; callers re-attach their own.
func (s *Service) Refine(ctx context.Context, current itinerary.Itinerary, instruction string) (*itinerary.Itinerary, error) {
	instruction, err := checkInput(instruction)
	if err != nil {
		return nil, err
	}

	// Identity is not the model's business.
	current.ID = ""
	current.CreatedAt = time.Time{}
	current.UpdatedAt = nil
	doc, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode current itinerary: %w", err)
	}

	return s.call(ctx, ai.StructuredRequest{
		Task:         ai.TaskRefine,
		SystemPrompt: ai.RefinementSystemPrompt,
		UserPrompt:   ai.RefinementUserPrompt(doc, instruction),
		Schema:       itinerary.Schema,
	})
}

func (s *Service) call(ctx context.Context, req ai.StructuredRequest) (*itinerary.Itinerary, error) {
	text, err := s.provider.CompleteJSON(ctx, req)
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("%s returned an empty reply", s.provider.Name())
	}
	if err != nil {
		s.logger.WarnContext(ctx, "itinerary provider call failed",
			"stage", string(StageTransport), "task", string(req.Task), "provider", s.provider.Name(), "error", err)
		return nil, &ProviderError{Stage: StageTransport, Err: err}
	}

	it, err := itinerary.ParseModelOutput([]byte(text))
	if err != nil {
		s.logger.WarnContext(ctx, "itinerary provider reply rejected",
			"stage", string(StageSchema), "task", string(req.Task), "provider", s.provider.Name(), "error", err)
		return nil, &ProviderError{Stage: StageSchema, Err: err}
	}
	return it, nil
}

func checkInput(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if utf8.RuneCountInString(s) > MaxPromptLength {
		return "", fmt.Errorf("%w: request longer than %d characters", ErrInvalidInput, MaxPromptLength)
	}
	return s, nil
}
