package routes

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"time"

	"simpleblog/app/controllers"
	"simpleblog/app/metrics"
	"simpleblog/app/middleware"
	"simpleblog/app/repositories"
	"simpleblog/app/services"
	"simpleblog/app/session"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Options carries everything the router wires together.
type Options struct {
	DB        *repositories.DB
	Sessions  *session.Store
	Templates map[string]*template.Template
	Metrics   *metrics.Metrics
	Clock     services.Clock
	Logger    *zap.Logger

	AdminUsername     string
	AdminPasswordHash string
	CookieName        string
	SessionTTL        time.Duration
	SecureCookie      bool
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(opts Options) *mux.Router {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	postRepo := repositories.NewSQLPostRepository(opts.DB)
	commentRepo := repositories.NewSQLCommentRepository(opts.DB)

	postService := services.NewPostService(postRepo)
	commentService := services.NewCommentService(commentRepo, postRepo, opts.Clock, logger.Named("comments"))
	authService := services.NewAuthService(opts.AdminUsername, opts.AdminPasswordHash, opts.Sessions, logger.Named("auth"))

	postController := controllers.NewPostController(postService, commentService, opts.Templates, logger)
	commentController := controllers.NewCommentController(commentService, opts.Templates, opts.Metrics, logger)
	authController := controllers.NewAuthController(authService, opts.Templates, opts.CookieName, opts.SessionTTL, opts.SecureCookie, logger)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(logger.Named("http")))
	router.Use(middleware.Recoverer(logger))
	router.Use(opts.Metrics.Instrument)
	router.Use(middleware.Session(opts.Sessions, opts.CookieName, session.ErrNotFound, logger))

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Not found"})
			return
		}
		http.NotFound(w, r)
	})

	router.Handle("/metrics", opts.Metrics.Handler()).Methods("GET")

	// Web routes
	router.HandleFunc("/", postController.Index).Methods("GET")
	router.HandleFunc("/login", authController.LoginForm).Methods("GET")
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/logout", authController.Logout).Methods("POST")

	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/comments", commentController.Create).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/comments/delete", commentController.Delete).Methods("POST")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.HandleFunc("/posts", postController.Index).Methods("GET")
	api.HandleFunc("/posts/{id:[0-9]+}", postController.Show).Methods("GET")

	return router
}
