package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"simpleblog/app/repositories"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// maxFormBytes caps the size of a form body.
const maxFormBytes = 64 << 10

func wantsJSON(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" || strings.HasPrefix(r.URL.Path, "/api")
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if wantsJSON(r) {
		sendJSON(w, status, map[string]string{"error": message})
		return
	}
	http.Error(w, message, status)
}

// sendStoreError maps a store error to 404 or 500. Driver text is logged,
// never shown.
func sendStoreError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}
	logger.Error("store error", zap.String("path", r.URL.Path), zap.Error(err))
	sendError(w, r, "Internal server error", http.StatusInternalServerError)
}

// renderPage executes the layout of a page into a buffer so a template
// error can still produce a clean 500.
func renderPage(w http.ResponseWriter, r *http.Request, logger *zap.Logger, tmpl *template.Template, status int, data interface{}) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Error("template error", zap.String("template", tmpl.Name()), zap.Error(err))
		sendError(w, r, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func postIDFromRequest(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id < 1 {
		return 0, errors.New("invalid post ID")
	}
	return id, nil
}
