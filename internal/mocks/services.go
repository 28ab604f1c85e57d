package mocks

import (
	"context"

	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/ratelimit"
	"github.com/blog-comments-api/internal/service"
)

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	ListFunc   func(ctx context.Context, postSlug string) ([]*models.Comment, error)
	CreateFunc func(ctx context.Context, req *models.CreateCommentRequest, clientIP string) (*service.CreateResult, error)
	DeleteFunc func(ctx context.Context, req *models.DeleteCommentRequest) error
	CountFunc  func(ctx context.Context) (int, error)

	ClientIPs []string
}

// Verify interface compliance
var _ service.CommentService = (*MockCommentService)(nil)

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{}
}

func (m *MockCommentService) List(ctx context.Context, postSlug string) ([]*models.Comment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, postSlug)
	}
	return []*models.Comment{}, nil
}

func (m *MockCommentService) Create(ctx context.Context, req *models.CreateCommentRequest, clientIP string) (*service.CreateResult, error) {
	m.ClientIPs = append(m.ClientIPs, clientIP)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req, clientIP)
	}
	return &service.CreateResult{Comment: &models.Comment{
		ID:       "mock-id",
		PostSlug: req.PostSlug,
		Content:  req.Content,
		Author:   req.Author,
	}}, nil
}

func (m *MockCommentService) Delete(ctx context.Context, req *models.DeleteCommentRequest) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, req)
	}
	return nil
}

func (m *MockCommentService) Count(ctx context.Context) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockLimiter is a mock implementation of ratelimit.Limiter
type MockLimiter struct {
	Decision ratelimit.Decision
	Err      error
	Keys     []string
}

// Verify interface compliance
var _ ratelimit.Limiter = (*MockLimiter)(nil)

func NewMockLimiter(allowed bool) *MockLimiter {
	return &MockLimiter{Decision: ratelimit.Decision{Allowed: allowed}}
}

func (m *MockLimiter) Allow(ctx context.Context, key string) (ratelimit.Decision, error) {
	m.Keys = append(m.Keys, key)
	return m.Decision, m.Err
}
