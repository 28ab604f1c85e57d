package service

import (
	"context"

	"github.com/blog-comments-api/internal/config"
	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/ratelimit"
	"github.com/blog-comments-api/internal/repository"
	"github.com/rs/zerolog"
)

// CreateResult is the outcome of a comment submission
type CreateResult struct {
	Comment *models.Comment
	// Trapped is set when the honeypot caught the submission; nothing was stored
	Trapped bool
}

// CommentService defines the interface for comment operations
type CommentService interface {
	List(ctx context.Context, postSlug string) ([]*models.Comment, error)
	Create(ctx context.Context, req *models.CreateCommentRequest, clientIP string) (*CreateResult, error)
	Delete(ctx context.Context, req *models.DeleteCommentRequest) error
	Count(ctx context.Context) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Comment CommentService
}

// NewServices creates all services. limiter may be nil to disable rate limiting.
func NewServices(repos *repository.Repositories, limiter ratelimit.Limiter, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Comment: NewCommentService(repos.Comment, limiter, cfg, log),
	}
}
