// Package server exposes a resolved dependency graph over HTTP.
//
// The server is read-only: it holds one frozen graph (typically loaded from a
// snapshot file) and answers analysis queries against it. Endpoints:
//
//	GET /healthz          - liveness probe
//	GET /api/graph        - the snapshot JSON
//	GET /api/order        - topological load order
//	GET /api/rdeps/{name} - packages depending on a crate
//	GET /api/graph.dot    - Graphviz DOT rendering
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/crategraph/pkg/depgraph"
	"github.com/matzehuels/crategraph/pkg/errors"
	"github.com/matzehuels/crategraph/pkg/render"
)

// Server serves analysis queries over a frozen graph.
type Server struct {
	graph  *depgraph.Graph
	root   depgraph.PackageID
	logger *log.Logger
}

// New creates a server for the given graph. The analysis root is the graph's
// source package (recovered structurally, so snapshot-loaded graphs work).
func New(g *depgraph.Graph, logger *log.Logger) *Server {
	root := g.Root()
	if sources := depgraph.Sources(g); len(sources) > 0 {
		root = sources[0]
	}
	return &Server{graph: g, root: root, logger: logger}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/graph.dot", s.handleDOT)
		r.Get("/order", s.handleOrder)
		r.Get("/rdeps/{name}", s.handleRdeps)
	})
	return r
}

func (s *Server) handleGraph(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := depgraph.WriteSnapshot(s.graph, w); err != nil {
		s.logger.Error("write graph", "err", err)
	}
}

func (s *Server) handleDOT(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.Write([]byte(render.ToDOT(s.graph)))
}

func (s *Server) handleOrder(w http.ResponseWriter, _ *http.Request) {
	order := depgraph.TopoOrder(s.graph, s.root)
	out := make([]string, len(order))
	for i, id := range order {
		out[i] = id.String()
	}
	writeJSON(w, map[string]any{"root": s.root.String(), "order": out})
}

func (s *Server) handleRdeps(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	id := s.graph.ResolveName(name)
	if !s.graph.Has(id) {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodePackageNotFound, "unknown package %q", name))
		return
	}

	dependents := depgraph.ReverseIndex(s.graph)[id]
	out := make([]string, len(dependents))
	for i, dep := range dependents {
		out[i] = dep.String()
	}
	writeJSON(w, map[string]any{"package": id.String(), "dependents": out})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err *errors.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":  string(err.Code),
		"error": err.Message,
	})
}

// statusWriter captures the response status for request logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// requestLogger tags each request with an id and logs method, path, status
// and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)

		s.logger.Info("request",
			"id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
