package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"simpleblog/app/models"
)

// SQLCommentRepository implements CommentRepository on a relational store
type SQLCommentRepository struct {
	db *DB
}

// NewSQLCommentRepository creates a new SQLCommentRepository
func NewSQLCommentRepository(db *DB) *SQLCommentRepository {
	return &SQLCommentRepository{db: db}
}

// Create inserts a fully populated comment and records the generated ID.
// CreatedAt must already be set by the caller.
func (r *SQLCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `INSERT INTO comment (name, website, "text", created_at, post_id) VALUES (?, ?, ?, ?, ?)`
	if r.db.dialect == DialectPostgres {
		query += ` RETURNING id`
	}

	stmt, err := r.db.prepare(ctx, "insert comment", query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := []any{
		comment.Name,
		comment.Website,
		comment.Text,
		formatStoreTime(comment.CreatedAt),
		comment.PostID,
	}

	if r.db.dialect == DialectPostgres {
		var id int
		if err := stmt.QueryRowContext(ctx, args...).Scan(&id); err != nil {
			return newPersistenceError("insert comment", err)
		}
		comment.ID = id
		return nil
	}

	result, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return newPersistenceError("insert comment", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		comment.ID = int(id)
	}
	return nil
}

// ListByPost retrieves all comments for a post, oldest first
func (r *SQLCommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	stmt, err := r.db.prepare(ctx, "list comments",
		`SELECT id, post_id, name, website, "text", created_at FROM comment WHERE post_id = ? ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, postID)
	if err != nil {
		return nil, &QueryError{Op: "list comments", Err: err}
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var (
			comment   models.Comment
			website   sql.NullString
			createdAt string
		)
		if err := rows.Scan(&comment.ID, &comment.PostID, &comment.Name, &website, &comment.Text, &createdAt); err != nil {
			return nil, &QueryError{Op: "list comments", Err: err}
		}
		t, err := parseStoreTime(createdAt)
		if err != nil {
			return nil, &QueryError{Op: "list comments", Err: fmt.Errorf("comment %d: %w", comment.ID, err)}
		}
		comment.Website = website.String
		comment.CreatedAt = t
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Op: "list comments", Err: err}
	}
	return comments, nil
}

// Delete removes the comment matching both ids. The comment id alone would
// do; post_id guards against deleting across posts. The boolean reports
// that the statement ran, not that a row matched.
func (r *SQLCommentRepository) Delete(ctx context.Context, postID, commentID int) (bool, error) {
	stmt, err := r.db.prepare(ctx, "delete comment", `DELETE FROM comment WHERE post_id = ? AND id = ?`)
	if err != nil {
		return false, err
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, postID, commentID); err != nil {
		return false, newPersistenceError("delete comment", err)
	}
	return true, nil
}
