package controllers

import (
	"html/template"
	"io"
	"net/http"

	"simpleblog/app/auth"
	"simpleblog/app/models"
	"simpleblog/app/services"
	"simpleblog/app/views"

	"go.uber.org/zap"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	handler   *CommentHandler
	comments  *services.CommentService
	templates map[string]*template.Template
	logger    *zap.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(comments *services.CommentService, templates map[string]*template.Template, recorder Recorder, logger *zap.Logger) *CommentController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentController{
		handler:   NewCommentHandler(comments, recorder),
		comments:  comments,
		templates: templates,
		logger:    logger,
	}
}

// Create handles a comment form submission
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDFromRequest(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form", http.StatusBadRequest)
		return
	}
	form := models.CommentForm{
		Name:    r.PostFormValue("comment-name"),
		Website: r.PostFormValue("comment-website"),
		Text:    r.PostFormValue("comment-text"),
	}

	outcome := cc.handler.HandleSubmit(r.Context(), postID, form)
	cc.write(w, r, postID, outcome)
}

// Delete handles the delete buttons of the comment list
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDFromRequest(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err != nil {
		sendError(w, r, "Failed to read form", http.StatusBadRequest)
		return
	}
	req, err := ParseDeleteRequest(string(body))
	if err != nil {
		sendError(w, r, "Failed to parse form", http.StatusBadRequest)
		return
	}

	outcome, err := cc.handler.HandleDelete(r.Context(), postID, req, auth.FromContext(r.Context()))
	if err != nil {
		sendStoreError(w, r, cc.logger, err)
		return
	}
	cc.write(w, r, postID, outcome)
}

// write performs an Outcome: a redirect, or the post page with whatever
// form state the outcome carries.
func (cc *CommentController) write(w http.ResponseWriter, r *http.Request, postID int, outcome Outcome) {
	if outcome.Kind == OutcomeRedirect {
		http.Redirect(w, r, outcome.URL, http.StatusSeeOther)
		return
	}

	post, err := cc.comments.GetPostWithComments(r.Context(), postID)
	if err != nil {
		sendStoreError(w, r, cc.logger, err)
		return
	}
	renderPage(w, r, cc.logger, cc.templates["posts/show"], http.StatusOK, views.ShowPage{
		Principal: auth.FromContext(r.Context()),
		Post:      post,
		Form:      outcome.Form,
		Errors:    outcome.Errors,
	})
}
