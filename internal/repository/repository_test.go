package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/blog-comments-api/internal/mocks"
	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/repository"
)

func TestMockCommentRepository_CreateAssignsIdentity(t *testing.T) {
	var repo repository.CommentRepository = mocks.NewMockCommentRepository()
	ctx := context.Background()

	first := &models.Comment{PostSlug: "p", Content: "one", Author: "A"}
	second := &models.Comment{PostSlug: "p", Content: "two", Author: "B"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if first.ID == "" || first.ID == second.ID {
		t.Errorf("Expected distinct ids, got %q and %q", first.ID, second.ID)
	}
	if !second.CreatedAt.After(first.CreatedAt) {
		t.Error("Later insert should have a later created_at")
	}
}

func TestMockCommentRepository_ListOrdering(t *testing.T) {
	repo := mocks.NewMockCommentRepository()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for i, content := range []string{"a", "b", "c"} {
		repo.Seed(&models.Comment{PostSlug: "post", Content: content, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}
	repo.Seed(&models.Comment{PostSlug: "elsewhere", Content: "z", CreatedAt: base.Add(time.Hour)})

	comments, err := repo.ListByPostSlug(ctx, "post")
	if err != nil {
		t.Fatalf("ListByPostSlug failed: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("Expected 3 comments, got %d", len(comments))
	}
	if comments[0].Content != "c" || comments[2].Content != "a" {
		t.Errorf("Expected newest first, got %q..%q", comments[0].Content, comments[2].Content)
	}
}

func TestMockCommentRepository_DeleteIsIdempotent(t *testing.T) {
	repo := mocks.NewMockCommentRepository()
	ctx := context.Background()

	c := &models.Comment{PostSlug: "p", Content: "bye"}
	repo.Seed(c)

	for i := 0; i < 2; i++ {
		if err := repo.Delete(ctx, c.ID); err != nil {
			t.Fatalf("Delete %d failed: %v", i, err)
		}
	}

	count, _ := repo.Count(ctx)
	if count != 0 {
		t.Errorf("Expected 0 comments, got %d", count)
	}
}
