package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clickerrealm/community-api/internal/core/domain"
	"github.com/clickerrealm/community-api/internal/core/ports"
)

// Fallback content served when the generative API is unconfigured or
// failing. The pages render these instead of blocking.
const (
	fallbackIdea = "Build a golden clicker shrine in your realm and post a screenshot. " +
		"The community votes on the shiniest one this week!"
	fallbackDraftTitle   = "Share your best clicker setup"
	fallbackDraftContent = "Tell us about your layout, your upgrade order, and the one trick " +
		"you wish you had known earlier."
)

// GeneratorService wraps the generative client with community prompts and
// fail-open behavior.
type GeneratorService struct {
	gen ports.Generator
	log zerolog.Logger
}

func NewGeneratorService(gen ports.Generator, log zerolog.Logger) *GeneratorService {
	return &GeneratorService{gen: gen, log: log}
}

func (s *GeneratorService) ShowcaseIdea(ctx context.Context) (string, error) {
	prompt := "Suggest one fun, family-friendly build or challenge idea for a Roblox " +
		"clicker game fan community showcase. Two sentences, enthusiastic tone."

	idea, err := s.gen.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(idea) == "" {
		s.log.Warn().Err(err).Msg("showcase idea generation failed, serving fallback")
		return fallbackIdea, nil
	}
	return strings.TrimSpace(idea), nil
}

func (s *GeneratorService) SuggestPost(ctx context.Context, category domain.PostCategory) (*ports.PostDraft, error) {
	prompt := fmt.Sprintf(
		"Write a forum post for the %s category of a Roblox clicker game community. "+
			`Respond with JSON only: {"title": "...", "content": "..."}. `+
			"Keep the title under 10 words and the content under 80 words.",
		category,
	)

	var draft ports.PostDraft
	if err := s.gen.GenerateJSON(ctx, prompt, &draft); err != nil {
		s.log.Warn().Err(err).Str("category", string(category)).Msg("post draft generation failed, serving fallback")
		return &ports.PostDraft{Title: fallbackDraftTitle, Content: fallbackDraftContent}, nil
	}
	if strings.TrimSpace(draft.Title) == "" || strings.TrimSpace(draft.Content) == "" {
		return &ports.PostDraft{Title: fallbackDraftTitle, Content: fallbackDraftContent}, nil
	}
	return &draft, nil
}
