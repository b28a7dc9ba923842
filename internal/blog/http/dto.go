package http

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aussiebroadwan/miniblog/internal/blog/domain"
)

// maxBodyBytes bounds request bodies well above the largest legal post.
const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSON reads and validates a JSON request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	defer io.Copy(io.Discard, body) //nolint:errcheck

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}

type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	DisplayName string `json:"display_name" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type PostRequest struct {
	Title     string  `json:"title" validate:"required,min=3,max=200"`
	Content   string  `json:"content" validate:"required,min=10,max=10000"`
	ImagePath *string `json:"image_path" validate:"omitempty,max=500"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// PostResponse is the serialized post. Author and Comments are present
// only on endpoints that eager-fetch them.
type PostResponse struct {
	ID        int64              `json:"id"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	ImagePath *string            `json:"image_path,omitempty"`
	UserID    int64              `json:"user_id"`
	Author    *domain.PublicUser `json:"author,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt *time.Time         `json:"updated_at,omitempty"`

	CommentCount int               `json:"comment_count"`
	Comments     []CommentResponse `json:"comments,omitempty"`
}

type CommentResponse struct {
	ID        int64              `json:"id"`
	Content   string             `json:"content"`
	PostID    int64              `json:"post_id"`
	UserID    int64              `json:"user_id"`
	Author    *domain.PublicUser `json:"author,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// PagedPostsResponse wraps one listing page with paging bookkeeping.
type PagedPostsResponse struct {
	Items       []PostResponse `json:"items"`
	CurrentPage int            `json:"current_page"`
	PageSize    int            `json:"page_size"`
	TotalCount  int64          `json:"total_count"`
	TotalPages  int            `json:"total_pages"`
}

func toPostResponse(p *domain.Post) PostResponse {
	resp := PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		ImagePath: p.ImagePath,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.User != nil {
		pub := p.User.Public()
		resp.Author = &pub
	}
	resp.CommentCount = len(p.Comments)
	for i := range p.Comments {
		resp.Comments = append(resp.Comments, toCommentResponse(&p.Comments[i]))
	}
	return resp
}

func toPostResponses(posts []domain.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, toPostResponse(&posts[i]))
	}
	return out
}

func toCommentResponse(c *domain.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		PostID:    c.PostID,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
	}
	if c.User != nil {
		pub := c.User.Public()
		resp.Author = &pub
	}
	return resp
}

func toCommentResponses(comments []domain.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, toCommentResponse(&comments[i]))
	}
	return out
}
