package models

import "errors"

// AddComment attaches a comment to the post
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}
	if comment.PostID != p.ID {
		return errors.New("comment belongs to another post")
	}

	p.Comments = append(p.Comments, comment)
	return nil
}
