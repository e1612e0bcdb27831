package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostAddComment(t *testing.T) {
	post := &Post{ID: 1, Title: "Test Post"}

	t.Run("add comment", func(t *testing.T) {
		err := post.AddComment(&Comment{ID: 1, PostID: 1, Name: "Test Author", Text: "Test Comment"})
		assert.NoError(t, err)
		assert.Len(t, post.Comments, 1)
	})

	t.Run("add nil comment", func(t *testing.T) {
		assert.Error(t, post.AddComment(nil))
	})

	t.Run("add comment from another post", func(t *testing.T) {
		err := post.AddComment(&Comment{ID: 2, PostID: 9})
		assert.Error(t, err)
		assert.Len(t, post.Comments, 1)
	})
}
