package web

import (
	"log/slog"
	"net/http"

	"f0oster/orgspy/snapshot"
)

// Server exposes the latest crawl snapshot read-only: projected tables as
// JSON or CSV plus an aggregate summary. It never crawls; the snapshot file
// written by the crawler binary is its only input, reloaded per request so a
// crawl running alongside shows up incrementally.
type Server struct {
	store snapshot.Store
	mux   *http.ServeMux
	addr  string
}

func NewServer(store snapshot.Store, addr string) *Server {
	s := &Server{
		store: store,
		mux:   http.NewServeMux(),
		addr:  addr,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/hierarchy", s.handleHierarchy)
	s.mux.HandleFunc("GET /api/hierarchy.csv", s.handleHierarchyCSV)
	s.mux.HandleFunc("GET /api/roles", s.handleRoles)
	s.mux.HandleFunc("GET /api/roles.csv", s.handleRolesCSV)
	s.mux.HandleFunc("GET /api/summary", s.handleSummary)
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	slog.Info("starting web server", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler returns the HTTP handler for use with custom servers.
func (s *Server) Handler() http.Handler {
	return s.mux
}
