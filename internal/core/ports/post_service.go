package ports

import (
	"context"

	"github.com/clickerrealm/community-api/internal/core/domain"
)

// CreatePostInput carries the data for a new post.
type CreatePostInput struct {
	Title    string
	Content  string
	Category domain.PostCategory
}

// PostService defines use-case operations for board posts.
type PostService interface {
	// Create stores a new post. ANNOUNCEMENT posts require an admin actor.
	Create(ctx context.Context, actor *domain.User, input CreatePostInput) (*domain.Post, error)
	ListByCategory(ctx context.Context, category domain.PostCategory) ([]*domain.Post, error)
	// Delete removes a post; admin only.
	Delete(ctx context.Context, actor *domain.User, postID string) error
}
