package profile

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jedipath/quiz-api/internal/metrics"
	"github.com/jedipath/quiz-api/internal/quiz"
)

// The persona prompt sent as the system turn. Section structure must
// stay in sync with fallbackTemplate so both paths read alike.
const personaPrompt = `You are a wise Jedi Master crafting destinies for Padawans. Given a list of ranked answers to five questions, infer the individual's Jedi persona. Respond in rich markdown with clear headings and bolded attribute labels. Include the following sections:

- **Lightsaber Forms:** List a primary, secondary and tertiary form with a one-sentence rationale for each.
- **Force Alignment:** Describe the Force philosophy (e.g. Light-side Guardian, Consular, or a more balanced approach).
- **Lightsaber Details:** Specify colour, hilt style and the sound of ignition.
- **Robes/Armour:** Suggest appropriate attire.
- **Symbolic Item:** A personal talisman or artifact.
- **Backstory:** A short narrative explaining how their path led them here.
- **Famous Jedi Comparisons:** Mention two well-known Jedi they resemble.
- **Theme Song:** Suggest a piece of Star Wars music that fits them.
- **Training Challenge:** Propose a short "holocron challenge" - a mini mission or exercise to further their development.
- **Holo-message:** End with a short inspirational quote the Jedi might leave in a holocron.

Answer richly and creatively but stay within a reasonable length (around 500 words).`

// TextGenerator is the hosted text-generation dependency (implemented
// by the openai client). Nil means only the local fallback runs.
type TextGenerator interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Service produces destiny profiles: one retry-free attempt against the
// hosted model, then the local fallback.
type Service struct {
	llm    TextGenerator
	logger zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewService(llm TextGenerator, logger zerolog.Logger) *Service {
	return &Service{
		llm:    llm,
		logger: logger.With().Str("component", "profile_service").Logger(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type userPayload struct {
	Name    *string        `json:"name"`
	Answers quiz.AnswerSet `json:"answers"`
}

// Generate builds the prompt pair, tries the hosted model once and
// falls back locally on any failure. Upstream errors are never
// surfaced; the fallback path has no external dependency.
func (s *Service) Generate(ctx context.Context, name string, answers quiz.AnswerSet) (Result, error) {
	payload := userPayload{Answers: answers}
	if name != "" {
		payload.Name = &name
	}
	userTurn, err := json.Marshal(payload)
	if err != nil {
		return Result{}, err
	}

	if s.llm != nil {
		text, err := s.llm.Complete(ctx, personaPrompt, string(userTurn))
		if err == nil && text != "" {
			metrics.GenerationsTotal.WithLabelValues("llm").Inc()
			return Result{Profile: text, Data: nil}, nil
		}
		metrics.LLMFailuresTotal.Inc()
		s.logger.Warn().Err(err).Msg("hosted generation failed, using fallback")
	}

	s.mu.Lock()
	result := fallbackResult(name, s.rng)
	s.mu.Unlock()

	metrics.GenerationsTotal.WithLabelValues("fallback").Inc()
	return result, nil
}
