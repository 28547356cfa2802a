package ops

import (
	"net/http"
	"net/http/pprof"

	"modeleval/internal"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the operational sidecar: health, version and pprof on a
// port separate from the public API.
type Server struct {
	router  *chi.Mux
	version string
	logger  *internal.Logger
}

// NewServer creates the ops server
func NewServer(version string, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		router:  chi.NewRouter(),
		version: version,
		logger:  logger,
	}

	s.router.Use(middleware.Recoverer)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/version", s.handleVersion)

	s.router.Route("/debug/pprof", func(r chi.Router) {
		r.Get("/", http.HandlerFunc(pprof.Index))
		r.Get("/cmdline", http.HandlerFunc(pprof.Cmdline))
		r.Get("/profile", http.HandlerFunc(pprof.Profile))
		r.Get("/symbol", http.HandlerFunc(pprof.Symbol))
		r.Get("/trace", http.HandlerFunc(pprof.Trace))
		r.Get("/{name}", func(w http.ResponseWriter, req *http.Request) {
			pprof.Handler(chi.URLParam(req, "name")).ServeHTTP(w, req)
		})
	})

	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"version":"` + s.version + `"}`))
}

// Run serves on the given port; blocks until the listener fails
func (s *Server) Run(port string) error {
	s.logger.Info("ops server listening on :%s", port)
	return http.ListenAndServe(":"+port, s.router)
}
