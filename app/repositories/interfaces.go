package repositories

import (
	"context"

	"simpleblog/app/models"
)

// PostRepository defines the interface for post data access. Posts are
// read-only here; they are written by the installer or another tool.
type PostRepository interface {
	GetByID(ctx context.Context, id int) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID int) ([]*models.Comment, error)
	Delete(ctx context.Context, postID, commentID int) (bool, error)
}
