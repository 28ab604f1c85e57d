package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/blog-comments-api/internal/config"
	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/ratelimit"
	"github.com/blog-comments-api/internal/repository"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	repo         repository.CommentRepository
	limiter      ratelimit.Limiter
	limits       config.CommentsConfig
	window       time.Duration
	queryTimeout time.Duration
	log          zerolog.Logger
}

// NewCommentService creates a CommentService
func NewCommentService(repo repository.CommentRepository, limiter ratelimit.Limiter, cfg *config.Config, log zerolog.Logger) CommentService {
	limits := cfg.Comments
	if limits.DefaultAuthor == "" {
		limits.DefaultAuthor = models.DefaultAuthor
	}

	return &commentService{
		repo:         repo,
		limiter:      limiter,
		limits:       limits,
		window:       cfg.RateLimit.Window,
		queryTimeout: cfg.Database.QueryTimeout,
		log:          log.With().Str("service", "comment").Logger(),
	}
}

// List returns the comments of a post, newest first
func (s *commentService) List(ctx context.Context, postSlug string) ([]*models.Comment, error) {
	if postSlug == "" {
		return nil, badRequest(MsgMissingSlug)
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	comments, err := s.repo.ListByPostSlug(ctx, postSlug)
	if err != nil {
		s.log.Error().Err(err).Str("post_slug", postSlug).Msg("Failed to fetch comments")
		return nil, internal(MsgFetchFailed, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	return comments, nil
}

// Create runs the honeypot, rate limit, validation and sanitization steps,
// then stores the comment
func (s *commentService) Create(ctx context.Context, req *models.CreateCommentRequest, clientIP string) (*CreateResult, error) {
	if req.Website != "" {
		s.log.Warn().Str("client_ip", clientIP).Msg("Spam attempt detected")
		return &CreateResult{Trapped: true}, nil
	}

	if err := s.checkRateLimit(ctx, clientIP); err != nil {
		return nil, err
	}

	if req.PostSlug == "" || req.Content == "" {
		return nil, badRequest(MsgMissingFields)
	}
	if charCount(strings.TrimSpace(req.Content)) < s.limits.MinContentLength {
		return nil, badRequest(s.tooShortMessage())
	}

	comment := &models.Comment{
		PostSlug: sanitizeText(req.PostSlug, s.limits.MaxPostSlugLength),
		Content:  sanitizeText(req.Content, s.limits.MaxContentLength),
		Author:   sanitizeText(req.DisplayName(), s.limits.MaxAuthorLength),
	}
	if comment.Author == "" {
		comment.Author = s.limits.DefaultAuthor
	}
	if comment.PostSlug == "" {
		return nil, badRequest(MsgMissingFields)
	}
	// stripping markup can shorten content below the minimum
	if charCount(comment.Content) < s.limits.MinContentLength {
		return nil, badRequest(s.tooShortMessage())
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	if err := s.repo.Create(storeCtx, comment); err != nil {
		s.log.Error().Err(err).Str("post_slug", comment.PostSlug).Msg("Failed to save comment")
		return nil, internal(MsgSaveFailed, err)
	}

	s.log.Info().
		Str("comment_id", comment.ID).
		Str("post_slug", comment.PostSlug).
		Msg("Comment created")

	return &CreateResult{Comment: comment}, nil
}

// Delete removes a comment. Without RequireAdminCode an omitted adminCode
// is accepted.
func (s *commentService) Delete(ctx context.Context, req *models.DeleteCommentRequest) error {
	id := string(req.ID)
	if id == "" {
		return badRequest(MsgMissingID)
	}

	if req.AdminCode != "" {
		if !s.validAdminCode(req.AdminCode) {
			s.log.Warn().Str("comment_id", id).Msg("Invalid admin code on delete")
			return forbidden(MsgInvalidAdminCode)
		}
	} else if s.limits.RequireAdminCode {
		return forbidden(MsgAdminCodeNeeded)
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("comment_id", id).Msg("Failed to delete comment")
		return internal(MsgDeleteFailed, err)
	}

	s.log.Info().Str("comment_id", id).Bool("admin", req.AdminCode != "").Msg("Comment deleted")
	return nil
}

// Count returns the total number of stored comments
func (s *commentService) Count(ctx context.Context) (int, error) {
	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}

// checkRateLimit fails open when the limiter backend errors
func (s *commentService) checkRateLimit(ctx context.Context, clientIP string) error {
	if s.limiter == nil || s.window <= 0 {
		return nil
	}

	decision, err := s.limiter.Allow(ctx, clientIP)
	if err != nil {
		s.log.Error().Err(err).Str("client_ip", clientIP).Msg("Rate limiter unavailable")
		return nil
	}
	if decision.Allowed {
		return nil
	}

	s.log.Info().Str("client_ip", clientIP).Dur("retry_after", decision.RetryAfter).Msg("Comment rate limited")
	return &Error{
		Kind:       KindTooManyRequests,
		Message:    fmt.Sprintf("Too many requests. Please wait %d seconds.", ceilSeconds(s.window)),
		RetryAfter: decision.RetryAfter,
	}
}

func (s *commentService) validAdminCode(code string) bool {
	if s.limits.AdminCode == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(s.limits.AdminCode)) == 1
}

func (s *commentService) tooShortMessage() string {
	return fmt.Sprintf("Comment too short (minimum %d characters)", s.limits.MinContentLength)
}

func (s *commentService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

func ceilSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
