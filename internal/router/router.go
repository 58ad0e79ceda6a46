package router

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"b1-flyer/internal/handler"
	"b1-flyer/internal/middleware"
	"b1-flyer/internal/model"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Flyer   *handler.FlyerHandler
	Upload  *handler.UploadHandler
	Health  *handler.HealthHandler
}

// Options configures cross-cutting router behaviour.
type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	// UploadDir, when set, is served under UploadPath.
	UploadDir  string
	UploadPath string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, authenticator middleware.Authenticator, opts Options, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery sits inside RequestID so panics are reported with a correlation id
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(chimw.Compress(5))
	if opts.RequestTimeout > 0 {
		r.Use(chimw.Timeout(opts.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, model.ErrCodeRouteNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "Method not allowed")
	})

	// Health check endpoint (no authentication required)
	r.Get("/health", h.Health.Health)

	if opts.UploadDir != "" {
		prefix := "/" + strings.Trim(opts.UploadPath, "/")
		fs := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(opts.UploadDir)))
		r.Get(prefix+"/*", fs.ServeHTTP)
	}

	requireAuth := middleware.BearerAuth(authenticator, logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.With(requireAuth).Get("/profile", h.Auth.Profile)
			r.With(requireAuth).Put("/profile", h.Auth.UpdateProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.Product.GetAll)
				r.Post("/", h.Product.Create)
				r.Get("/search/{query}", h.Product.Search)
				r.Get("/{id}", h.Product.GetByID)
				r.Put("/{id}", h.Product.Update)
				r.Delete("/{id}", h.Product.Delete)
			})

			r.Route("/flyers", func(r chi.Router) {
				r.Get("/", h.Flyer.GetAll)
				r.Post("/", h.Flyer.Create)
				r.Get("/{id}", h.Flyer.GetByID)
				r.Put("/{id}", h.Flyer.Update)
				r.Delete("/{id}", h.Flyer.Delete)
				r.Post("/{id}/duplicate", h.Flyer.Duplicate)
			})

			r.Post("/uploads", h.Upload.Upload)
		})
	})

	return r
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		Message:       message,
		Code:          code,
		CorrelationID: chimw.GetReqID(r.Context()),
	})
}
