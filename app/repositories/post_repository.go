package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"simpleblog/app/models"
)

const postColumns = `id, title, created_at, body,
	(SELECT COUNT(*) FROM comment WHERE comment.post_id = post.id) AS comment_count`

// SQLPostRepository implements PostRepository on a relational store
type SQLPostRepository struct {
	db *DB
}

// NewSQLPostRepository creates a new SQLPostRepository
func NewSQLPostRepository(db *DB) *SQLPostRepository {
	return &SQLPostRepository{db: db}
}

// GetByID retrieves a post together with its live comment count
func (r *SQLPostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	stmt, err := r.db.prepare(ctx, "fetch post", `SELECT `+postColumns+` FROM post WHERE id = ?`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	post, err := scanPost(stmt.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &QueryError{Op: "fetch post", Err: err}
	}
	return post, nil
}

// List retrieves every post, newest first
func (r *SQLPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	stmt, err := r.db.prepare(ctx, "list posts", `SELECT `+postColumns+` FROM post ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, &QueryError{Op: "list posts", Err: err}
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, &QueryError{Op: "list posts", Err: err}
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Op: "list posts", Err: err}
	}
	return posts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var (
		post      models.Post
		createdAt string
	)
	if err := row.Scan(&post.ID, &post.Title, &createdAt, &post.Body, &post.CommentCount); err != nil {
		return nil, err
	}

	t, err := parseStoreTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", post.ID, err)
	}
	post.CreatedAt = t
	return &post, nil
}
