package services

import (
	"context"
	"errors"

	"finanger/internal/ai"
	"finanger/internal/log"
	"finanger/internal/rules"
)

// ErrChatUnavailable is returned when free-form chat is requested but no AI
// endpoint is configured.
var ErrChatUnavailable = errors.New("chat unavailable: no AI endpoint configured")

// SuggestionService suggests expense categories. It asks the configured AI
// endpoint first and falls back to the keyword rules when the endpoint is
// absent or fails, so suggestions never error out.
type SuggestionService struct {
	client *ai.Client // nil when unconfigured
	rules  *rules.Engine
	logger *log.Logger
}

func NewSuggestionService(client *ai.Client, engine *rules.Engine, logger *log.Logger) *SuggestionService {
	return &SuggestionService{
		client: client,
		rules:  engine,
		logger: logger.WithComponent(log.ComponentAI),
	}
}

// SuggestCategory returns a category for the given description.
func (s *SuggestionService) SuggestCategory(ctx context.Context, description string) string {
	if s.client != nil {
		category, err := s.client.SuggestCategory(ctx, description)
		if err == nil {
			return category
		}
		s.logger.WarnContext(ctx, "AI suggestion failed, using keyword rules",
			log.FieldOperation, log.OpSuggest,
			log.FieldError, err)
	}
	return s.rules.Suggest(description)
}

// Chat forwards a free-form conversation to the AI endpoint.
func (s *SuggestionService) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	if s.client == nil {
		return "", ErrChatUnavailable
	}
	return s.client.Chat(ctx, messages)
}
