package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

type Server struct{ mux *chi.Mux }

const defaultTimeout = 15 * time.Second

// New builds the router. corsOrigins lists the front-end origins allowed to
// call the API; empty allows any origin. timeout is the request deadline
// handed to handlers (zero means 15s); a handler that returns after it
// without writing gets 504.
func New(corsOrigins []string, timeout time.Duration) *Server {
	m := chi.NewRouter()

	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	// All middlewares go here (before any routes are added)
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(Observe(log.Logger))
	m.Use(chimw.Recoverer)
	m.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "If-None-Match"},
		ExposedHeaders: []string{"ETag", "X-Search-Id"},
		MaxAge:         300,
	}))
	m.Use(chimw.Timeout(timeout))

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
