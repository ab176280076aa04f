package ports

import (
	"context"

	"github.com/clickerrealm/community-api/internal/core/domain"
)

// Generator is the outbound port to a generative text API.
type Generator interface {
	// Generate returns plain text for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	// GenerateJSON asks for a JSON response, strips a single wrapping code
	// fence if present, and unmarshals the result into out.
	GenerateJSON(ctx context.Context, prompt string, out any) error
}

// PostDraft is a generated post suggestion.
type PostDraft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// GeneratorService produces placeholder community content. Both operations
// fail open: when the upstream API is unconfigured or erroring they return
// fixed fallback content instead of an error.
type GeneratorService interface {
	ShowcaseIdea(ctx context.Context) (string, error)
	SuggestPost(ctx context.Context, category domain.PostCategory) (*PostDraft, error)
}
