package models

import "time"

// GeneralErrorKey is the FieldErrors key for problems not tied to a single field.
const GeneralErrorKey = "general"

// Post represents a blog post with comments.
type Post struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Body         string     `json:"body"`
	CreatedAt    time.Time  `json:"created_at"`
	CommentCount int        `json:"comment_count"`
	Comments     []*Comment `json:"comments,omitempty"`
}

// Comment represents a comment on a blog post.
type Comment struct {
	ID        int       `json:"id"`
	PostID    int       `json:"post_id"`
	Name      string    `json:"name"`
	Website   string    `json:"website"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentForm is a comment submission exactly as the visitor typed it.
type CommentForm struct {
	Name    string `form:"name" validate:"notblank"`
	Website string `form:"website"`
	Text    string `form:"text" validate:"notblank"`
}

// FieldErrors maps a form field name to a user-facing message.
type FieldErrors map[string]string
