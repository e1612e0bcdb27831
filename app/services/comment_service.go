package services

import (
	"context"
	"fmt"

	"simpleblog/app/auth"
	"simpleblog/app/models"
	"simpleblog/app/repositories"
	"simpleblog/app/validation"

	"go.uber.org/zap"
)

// SaveFailedMessage is shown when the store refuses a valid comment.
const SaveFailedMessage = "Your comment could not be saved, please try again later"

// RemoveResult tells the caller what RemoveComment did.
type RemoveResult int

const (
	// RemoveUnauthorized means the principal may not delete and the store
	// was not touched.
	RemoveUnauthorized RemoveResult = iota
	// RemoveExecuted means the delete statement ran. It may have matched no row.
	RemoveExecuted
	// RemoveSkipped means the principal was allowed but there was no comment
	// id to delete, so the store was not touched.
	RemoveSkipped
)

func (r RemoveResult) String() string {
	switch r {
	case RemoveUnauthorized:
		return "unauthorized"
	case RemoveExecuted:
		return "executed"
	case RemoveSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("RemoveResult(%d)", int(r))
	}
}

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	clock       Clock
	logger      *zap.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, clock Clock, logger *zap.Logger) *CommentService {
	if clock == nil {
		clock = SystemClock
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		clock:       clock,
		logger:      logger,
	}
}

// SubmitComment validates and stores a comment on postID. The returned map
// is empty on success. Invalid input never reaches the store, and a store
// failure is reported under models.GeneralErrorKey without the driver text.
func (s *CommentService) SubmitComment(ctx context.Context, postID int, form models.CommentForm) models.FieldErrors {
	errs := validation.ValidateComment(form)
	if errs.HasErrors() {
		return errs
	}

	comment := form.ToComment(postID, s.clock.Now())
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.logger.Error("failed to insert comment",
			zap.Int("post_id", postID),
			zap.Error(err))
		errs[models.GeneralErrorKey] = SaveFailedMessage
		return errs
	}

	s.logger.Info("comment created",
		zap.Int("post_id", postID),
		zap.Int("comment_id", comment.ID))
	return errs
}

// RemoveComment deletes commentID from postID when the principal is
// logged in. Anonymous callers get RemoveUnauthorized and no error. A
// commentID below 1 is RemoveSkipped. Store errors are returned for the
// caller to treat as fatal.
func (s *CommentService) RemoveComment(ctx context.Context, postID, commentID int, principal auth.Principal) (RemoveResult, error) {
	if !principal.IsAuthenticated() {
		return RemoveUnauthorized, nil
	}
	if commentID < 1 {
		return RemoveSkipped, nil
	}

	if _, err := s.commentRepo.Delete(ctx, postID, commentID); err != nil {
		return RemoveExecuted, fmt.Errorf("failed to delete comment %d on post %d: %w", commentID, postID, err)
	}

	s.logger.Info("comment deleted",
		zap.Int("post_id", postID),
		zap.Int("comment_id", commentID),
		zap.String("user", principal.Username))
	return RemoveExecuted, nil
}

// GetPostWithComments retrieves a post by ID with its comments attached
func (s *CommentService) GetPostWithComments(ctx context.Context, postID int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	for _, comment := range comments {
		if err := post.AddComment(comment); err != nil {
			return nil, err
		}
	}

	return post, nil
}
