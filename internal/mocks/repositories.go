package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/repository"
	"github.com/google/uuid"
)

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mu sync.Mutex

	Comments map[string]*models.Comment
	// Clock stamps CreatedAt; each insert advances it by one millisecond
	Clock time.Time

	CreateError error
	ListError   error
	DeleteError error
	CountError  error

	CreateCalls int
	ListCalls   int
	DeleteCalls int
}

// Verify interface compliance
var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[string]*models.Comment),
		Clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Clock = m.Clock.Add(time.Millisecond)
	comment.ID = uuid.New().String()
	comment.CreatedAt = m.Clock

	stored := *comment
	m.Comments[stored.ID] = &stored
	return nil
}

// Seed stores a comment as-is, without counting as a Create call
func (m *MockCommentRepository) Seed(comment *models.Comment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	stored := *comment
	m.Comments[stored.ID] = &stored
}

func (m *MockCommentRepository) ListByPostSlug(ctx context.Context, postSlug string) ([]*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++
	if m.ListError != nil {
		return nil, m.ListError
	}

	comments := make([]*models.Comment, 0)
	for _, c := range m.Comments {
		if c.PostSlug == postSlug {
			copied := *c
			comments = append(comments, &copied)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls++
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Comments, id)
	return nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CountError != nil {
		return 0, m.CountError
	}
	return len(m.Comments), nil
}
