package controllers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"simpleblog/app/auth"
	"simpleblog/app/models"
	"simpleblog/app/services"
)

// OutcomeKind says what the HTTP layer should do after a handler ran.
type OutcomeKind int

const (
	// OutcomeNone asks for no action. The page is shown as it is.
	OutcomeNone OutcomeKind = iota
	// OutcomeRedirect asks for a See Other redirect to Outcome.URL.
	OutcomeRedirect
	// OutcomeErrors asks for the form to be shown again with Outcome.Errors.
	OutcomeErrors
)

// Outcome is the result of a comment handler.
type Outcome struct {
	Kind   OutcomeKind
	URL    string
	Errors models.FieldErrors
	Form   models.CommentForm
}

// Recorder receives comment workflow counters.
type Recorder interface {
	ObserveSubmission(result string)
	ObserveDeletion(result string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveSubmission(string) {}
func (nopRecorder) ObserveDeletion(string)   {}

const deleteFieldPrefix = "delete-comment["

// DeleteRequest is the list of comment ids named by delete-comment[<id>]
// fields, in the order they were submitted.
type DeleteRequest struct {
	IDs []string
}

// ParseDeleteRequest reads an urlencoded body and keeps the delete-comment
// keys in submission order. Other fields are ignored.
func ParseDeleteRequest(body string) (DeleteRequest, error) {
	var req DeleteRequest
	for body != "" {
		var pair string
		pair, body, _ = strings.Cut(body, "&")
		if pair == "" {
			continue
		}
		rawKey, _, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return DeleteRequest{}, fmt.Errorf("invalid form key %q: %w", rawKey, err)
		}
		if !strings.HasPrefix(key, deleteFieldPrefix) || !strings.HasSuffix(key, "]") {
			continue
		}
		req.IDs = append(req.IDs, key[len(deleteFieldPrefix):len(key)-1])
	}
	return req, nil
}

// FirstID returns the first submitted id. Only the first key counts; ok is
// false when it is missing, not a number, or zero.
func (d DeleteRequest) FirstID() (int, bool) {
	if len(d.IDs) == 0 {
		return 0, false
	}
	id, err := strconv.Atoi(d.IDs[0])
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// CommentHandler turns comment form input into an Outcome.
type CommentHandler struct {
	comments *services.CommentService
	recorder Recorder
}

// NewCommentHandler creates a new CommentHandler. recorder may be nil.
func NewCommentHandler(comments *services.CommentService, recorder Recorder) *CommentHandler {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &CommentHandler{comments: comments, recorder: recorder}
}

// HandleSubmit stores the comment and asks for a redirect to the post, or
// returns the errors together with the form exactly as submitted.
func (h *CommentHandler) HandleSubmit(ctx context.Context, postID int, form models.CommentForm) Outcome {
	errs := h.comments.SubmitComment(ctx, postID, form)
	if !errs.HasErrors() {
		h.recorder.ObserveSubmission("created")
		return Outcome{Kind: OutcomeRedirect, URL: postURL(postID)}
	}

	if _, failed := errs[models.GeneralErrorKey]; failed {
		h.recorder.ObserveSubmission("failed")
	} else {
		h.recorder.ObserveSubmission("invalid")
	}
	return Outcome{Kind: OutcomeErrors, Errors: errs, Form: form}
}

// HandleDelete removes the first requested comment. Logged in users are
// always redirected back to the post; anyone else gets OutcomeNone.
func (h *CommentHandler) HandleDelete(ctx context.Context, postID int, req DeleteRequest, principal auth.Principal) (Outcome, error) {
	commentID, _ := req.FirstID()
	result, err := h.comments.RemoveComment(ctx, postID, commentID, principal)
	if err != nil {
		h.recorder.ObserveDeletion("failed")
		return Outcome{}, err
	}
	h.recorder.ObserveDeletion(result.String())

	if result == services.RemoveUnauthorized {
		return Outcome{Kind: OutcomeNone}, nil
	}
	return Outcome{Kind: OutcomeRedirect, URL: postURL(postID)}, nil
}

func postURL(postID int) string {
	return "/posts/" + strconv.Itoa(postID)
}
