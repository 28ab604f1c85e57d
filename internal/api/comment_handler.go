package api

import (
	"math"
	"net/http"
	"strconv"

	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/ratelimit"
	"github.com/blog-comments-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps POST and DELETE bodies
const maxBodyBytes = 64 << 10

// CommentHandler handles the comments endpoint
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comments").Logger(),
	}
}

// List handles GET /api/comments?slug=...
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.services.Comment.List(c.Request.Context(), c.Query("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.JSON(http.StatusOK, comments)
}

// Create handles POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn().Err(err).Msg("Failed to decode comment body")
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.MsgInternal})
		return
	}

	result, err := h.services.Comment.Create(c.Request.Context(), &req, ratelimit.ClientIP(c.Request))
	if err != nil {
		h.fail(c, err)
		return
	}

	// honeypot hits get the same answer a bot would expect from a real save
	if result.Trapped {
		c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
		return
	}

	c.JSON(http.StatusCreated, result.Comment)
}

// Delete handles DELETE /api/comments
func (h *CommentHandler) Delete(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req models.DeleteCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn().Err(err).Msg("Failed to decode delete body")
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.MsgInternal})
		return
	}

	if err := h.services.Comment.Delete(c.Request.Context(), &req); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// fail writes a service error as {"error": message}; causes are logged only
func (h *CommentHandler) fail(c *gin.Context, err error) {
	svcErr := service.AsError(err)

	if svcErr.Kind == service.KindInternal {
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Str("method", c.Request.Method).Msg("Request failed")
	}
	if svcErr.Kind == service.KindTooManyRequests && svcErr.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(svcErr.RetryAfter.Seconds()))))
	}

	c.JSON(svcErr.Kind.StatusCode(), gin.H{"error": svcErr.Message})
}
