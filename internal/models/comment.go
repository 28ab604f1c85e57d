package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Comment represents a comment left on a blog post
type Comment struct {
	ID        string    `json:"id" db:"id"`
	PostSlug  string    `json:"post_slug" db:"post_slug"`
	Content   string    `json:"content" db:"content"`
	Author    string    `json:"author" db:"author"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateCommentRequest is the POST body.
// Name is accepted as a legacy alias for Author.
type CreateCommentRequest struct {
	PostSlug string `json:"post_slug"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	Name     string `json:"name"`
	Website  string `json:"website"`
}

// DisplayName returns the author, falling back to the legacy name field
func (r *CreateCommentRequest) DisplayName() string {
	if strings.TrimSpace(r.Author) != "" {
		return r.Author
	}
	return r.Name
}

// DeleteCommentRequest is the DELETE body
type DeleteCommentRequest struct {
	ID        CommentID `json:"id"`
	AdminCode string    `json:"adminCode"`
}

// CommentID accepts either a JSON string or a JSON number.
// null and numeric zero decode to the empty ID.
type CommentID string

// UnmarshalJSON implements json.Unmarshaler
func (id *CommentID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = CommentID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("comment id must be a string or number: %w", err)
	}
	// zero is never a valid id and is treated as absent
	if f, err := n.Float64(); err == nil && f == 0 {
		*id = ""
		return nil
	}
	*id = CommentID(n.String())
	return nil
}

// SuccessResponse is returned by DELETE and by the honeypot trap
type SuccessResponse struct {
	Success bool `json:"success"`
}

// Defaults for comment limits
const (
	DefaultAuthor     = "Anonymous"
	MaxContentLength  = 1000
	MinContentLength  = 3
	MaxAuthorLength   = 50
	MaxPostSlugLength = 200
)
