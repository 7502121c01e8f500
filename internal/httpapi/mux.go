package httpapi

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RequestTimeout bounds routes that do local work only. Weather lookups are
// left without a deadline; the fetch waits as long as the API does.
const RequestTimeout = 30 * time.Second

// NewRouter builds the root router with the shared middleware stack, the
// health check and the static file server. Feature modules add their routes
// and choose their own deadlines.
func NewRouter(db *sql.DB, staticDir string, mqtt ConnectionReporter, logger *slog.Logger) chi.Router {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(RequestTimeout))
		registerHealthcheck(r, db, mqtt)
		registerStatic(r, staticDir, logger)
	})
	return r
}

func registerStatic(r chi.Router, dir string, logger *slog.Logger) {
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logger.Warn("static dir not found, /static/ disabled", "dir", dir)
		return
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
}
