package ports

import (
	"context"

	"github.com/clickerrealm/community-api/internal/core/domain"
)

// PostRepository persists board posts.
type PostRepository interface {
	Insert(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// ListByCategory returns posts in the category ordered by created_at
	// descending (ties keep insertion order). An empty category yields an
	// empty slice, not an error.
	ListByCategory(ctx context.Context, category domain.PostCategory) ([]*domain.Post, error)
	// Delete removes a post, or fails with domain.ErrPostNotFound.
	Delete(ctx context.Context, id string) error
}
