package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clickerrealm/community-api/internal/core/domain"
	"github.com/clickerrealm/community-api/internal/core/ports"
)

// PostService implements board post creation, listing and moderation.
type PostService struct {
	posts ports.PostRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewPostService(posts ports.PostRepository, audit ports.AuditRecorder, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, audit: audit, log: log}
}

func (s *PostService) Create(ctx context.Context, actor *domain.User, input ports.CreatePostInput) (*domain.Post, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}

	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || content == "" {
		return nil, domain.ErrEmptyField
	}

	if input.Category == domain.CategoryAnnouncement && !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	post := &domain.Post{
		ID:             uuid.NewString(),
		Title:          title,
		Content:        content,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username,
		Category:       input.Category,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.posts.Insert(ctx, post); err != nil {
		s.log.Error().Err(err).Str("author", actor.Username).Msg("failed to create post")
		return nil, err
	}

	s.log.Info().Str("post_id", post.ID).Str("author", actor.Username).Str("category", string(post.Category)).Msg("post created")
	return post, nil
}

func (s *PostService) ListByCategory(ctx context.Context, category domain.PostCategory) ([]*domain.Post, error) {
	return s.posts.ListByCategory(ctx, category)
}

func (s *PostService) Delete(ctx context.Context, actor *domain.User, postID string) error {
	if actor == nil || !actor.IsAdmin() {
		return domain.ErrUnauthorized
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEvent{
		ID:        uuid.NewString(),
		ActorID:   actor.ID,
		Actor:     actor.Username,
		Action:    domain.AuditPostDeleted,
		TargetID:  postID,
		Timestamp: time.Now().UTC(),
	})
	return nil
}
