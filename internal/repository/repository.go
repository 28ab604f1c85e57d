package repository

import (
	"context"

	"github.com/blog-comments-api/internal/database"
	"github.com/blog-comments-api/internal/models"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	// Create inserts a comment and fills in the store-assigned ID and CreatedAt
	Create(ctx context.Context, comment *models.Comment) error
	// ListByPostSlug returns the comments of one post, newest first
	ListByPostSlug(ctx context.Context, postSlug string) ([]*models.Comment, error)
	// Delete removes the comment with the given ID; a missing ID is not an error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Comment CommentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Comment: NewCommentRepo(db),
	}
}
