package mock

import (
	"context"
	"sort"
	"sync"

	"simpleblog/app/models"
	"simpleblog/app/repositories"
)

type PostRepository struct {
	posts    map[int]*models.Post
	comments *CommentRepository
	mutex    sync.RWMutex

	// Err, when set, is returned by every call.
	Err error
}

// DeleteCall records the arguments of one Delete call.
type DeleteCall struct {
	PostID    int
	CommentID int
}

type CommentRepository struct {
	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex

	CreateCalls []*models.Comment
	DeleteCalls []DeleteCall

	CreateErr error
	DeleteErr error
	ListErr   error
}

// NewPostRepository returns a post store whose comment counts are read
// live from comments, which may be nil.
func NewPostRepository(comments *CommentRepository) *PostRepository {
	return &PostRepository{
		posts:    make(map[int]*models.Post),
		comments: comments,
	}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[int]*models.Comment),
		nextID:   1,
	}
}

// Add stores a post as-is, keeping its ID.
func (m *PostRepository) Add(post *models.Post) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts[post.ID] = post
}

// PostRepository implementation
func (m *PostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	cp := *post
	cp.Comments = nil
	cp.CommentCount = m.countComments(id)
	return &cp, nil
}

func (m *PostRepository) List(ctx context.Context) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	var posts []*models.Post
	for _, post := range m.posts {
		cp := *post
		cp.CommentCount = m.countComments(post.ID)
		posts = append(posts, &cp)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (m *PostRepository) countComments(postID int) int {
	if m.comments == nil {
		return 0
	}
	comments, _ := m.comments.ListByPost(context.Background(), postID)
	return len(comments)
}

// CommentRepository implementation
func (m *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	cp := *comment
	m.CreateCalls = append(m.CreateCalls, &cp)
	if m.CreateErr != nil {
		return m.CreateErr
	}

	comment.ID = m.nextID
	m.nextID++
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *CommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			cp := *comment
			comments = append(comments, &cp)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (m *CommentRepository) Delete(ctx context.Context, postID, commentID int) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, DeleteCall{PostID: postID, CommentID: commentID})
	if m.DeleteErr != nil {
		return false, m.DeleteErr
	}
	if comment, exists := m.comments[commentID]; exists && comment.PostID == postID {
		delete(m.comments, commentID)
	}
	return true, nil
}

var (
	_ repositories.PostRepository    = (*PostRepository)(nil)
	_ repositories.CommentRepository = (*CommentRepository)(nil)
)
