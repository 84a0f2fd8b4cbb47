package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// assistantPrompt frames every question before it reaches the model, keeping
// the assistant focused on recycling topics and answering in French.
const assistantPrompt = "Tu es un assistant spécialisé dans le recyclage et la seconde vie des objets. " +
	"Réponds en français, de façon concise et pratique, à la question suivante : %s"

// ContentGenerator produces an answer from a prompt.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// RecyclingService answers recycling questions through a generative model
type RecyclingService struct {
	generator ContentGenerator
	logger    zerolog.Logger
}

// NewRecyclingService creates a new RecyclingService
func NewRecyclingService(generator ContentGenerator, logger zerolog.Logger) *RecyclingService {
	return &RecyclingService{
		generator: generator,
		logger:    logger,
	}
}

// Ask forwards a user question to the model and returns its answer. Upstream
// failures surface as a fallback answer, never as an error to the client.
func (s *RecyclingService) Ask(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(assistantPrompt, question)

	answer, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	s.logger.Debug().Int("questionLength", len(question)).Msg("Assistant answered")
	return answer, nil
}
