package models

import (
	"errors"
	"time"
)

// ToComment builds the row to persist for this submission.
func (f CommentForm) ToComment(postID int, createdAt time.Time) *Comment {
	return &Comment{
		PostID:    postID,
		Name:      f.Name,
		Website:   f.Website,
		Text:      f.Text,
		CreatedAt: createdAt,
	}
}

// HasErrors reports whether any message is present
func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

// SetPost sets the parent post and updates the PostID
func (c *Comment) SetPost(post *Post) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}

	c.PostID = post.ID
	return nil
}
