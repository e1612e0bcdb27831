package controllers

import (
	"html/template"
	"net/http"

	"simpleblog/app/auth"
	"simpleblog/app/services"
	"simpleblog/app/views"

	"go.uber.org/zap"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	posts     *services.PostService
	comments  *services.CommentService
	templates map[string]*template.Template
	logger    *zap.Logger
}

// NewPostController creates a new PostController
func NewPostController(posts *services.PostService, comments *services.CommentService, templates map[string]*template.Template, logger *zap.Logger) *PostController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostController{
		posts:     posts,
		comments:  comments,
		templates: templates,
		logger:    logger,
	}
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.posts.ListPosts(r.Context())
	if err != nil {
		sendStoreError(w, r, pc.logger, err)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, http.StatusOK, posts)
		return
	}
	renderPage(w, r, pc.logger, pc.templates["posts/index"], http.StatusOK, views.IndexPage{
		Principal: auth.FromContext(r.Context()),
		Posts:     posts,
	})
}

// Show handles showing a single post with its comments and an empty comment form
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDFromRequest(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := pc.comments.GetPostWithComments(r.Context(), postID)
	if err != nil {
		sendStoreError(w, r, pc.logger, err)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, http.StatusOK, post)
		return
	}
	renderPage(w, r, pc.logger, pc.templates["posts/show"], http.StatusOK, views.ShowPage{
		Principal: auth.FromContext(r.Context()),
		Post:      post,
	})
}
