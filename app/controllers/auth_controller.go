package controllers

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"simpleblog/app/auth"
	"simpleblog/app/services"
	"simpleblog/app/views"

	"go.uber.org/zap"
)

// LoginFailedMessage is shown when the credentials are rejected.
const LoginFailedMessage = "The username or password is incorrect"

// AuthController handles login and logout for the administrator
type AuthController struct {
	auth       *services.AuthService
	templates  map[string]*template.Template
	cookieName string
	cookieTTL  time.Duration
	secure     bool
	logger     *zap.Logger
}

// NewAuthController creates a new AuthController. The session cookie is
// named cookieName and lives for cookieTTL; secure marks it HTTPS only.
func NewAuthController(authService *services.AuthService, templates map[string]*template.Template, cookieName string, cookieTTL time.Duration, secure bool, logger *zap.Logger) *AuthController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthController{
		auth:       authService,
		templates:  templates,
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
		secure:     secure,
		logger:     logger,
	}
}

// LoginForm shows the login page
func (ac *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	if auth.FromContext(r.Context()).IsAuthenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	renderPage(w, r, ac.logger, ac.templates["auth/login"], http.StatusOK, views.LoginPage{})
}

// Login checks the submitted credentials and starts a session
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")

	token, err := ac.auth.Login(r.Context(), username, r.PostFormValue("password"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		renderPage(w, r, ac.logger, ac.templates["auth/login"], http.StatusOK, views.LoginPage{
			Username: username,
			Error:    LoginFailedMessage,
		})
		return
	}
	if err != nil {
		ac.logger.Error("login failed", zap.Error(err))
		sendError(w, r, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     ac.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ac.cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   ac.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout ends the current session
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(ac.cookieName); err == nil {
		if err := ac.auth.Logout(r.Context(), cookie.Value); err != nil {
			ac.logger.Warn("logout failed", zap.Error(err))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     ac.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   ac.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
