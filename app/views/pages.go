package views

import (
	"simpleblog/app/auth"
	"simpleblog/app/models"
)

// IndexPage is the data for "posts/index".
type IndexPage struct {
	Principal auth.Principal
	Posts     []*models.Post
}

// ShowPage is the data for "posts/show". Form and Errors carry a rejected
// submission back to the comment form.
type ShowPage struct {
	Principal auth.Principal
	Post      *models.Post
	Form      models.CommentForm
	Errors    models.FieldErrors
}

// LoginPage is the data for "auth/login".
type LoginPage struct {
	Principal auth.Principal
	Username  string
	Error     string
}
