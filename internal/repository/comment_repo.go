package repository

import (
	"context"

	"github.com/blog-comments-api/internal/database"
	"github.com/blog-comments-api/internal/models"
	"github.com/google/uuid"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment; id and created_at come from column defaults
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_slug, content, author)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		comment.PostSlug, comment.Content, comment.Author,
	).Scan(&comment.ID, &comment.CreatedAt)
}

// ListByPostSlug retrieves all comments for a post ordered newest first
func (r *commentRepo) ListByPostSlug(ctx context.Context, postSlug string) ([]*models.Comment, error) {
	query := `
		SELECT id, post_slug, content, author, created_at
		FROM comments
		WHERE post_slug = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, postSlug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID, &comment.PostSlug, &comment.Content, &comment.Author,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}

	return comments, rows.Err()
}

// Delete removes a comment by ID
func (r *commentRepo) Delete(ctx context.Context, id string) error {
	// ids are UUIDs; anything else cannot match a row
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil
	}

	_, err = r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = $1", parsed)
	return err
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}
