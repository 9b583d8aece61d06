package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Server exposes an MCP server over streamable HTTP, plus a health
// endpoint. Stdio deployments bypass this package entirely.
type Server struct {
	mcp     *mcpserver.MCPServer
	log     *slog.Logger
	version string
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(mcp *mcpserver.MCPServer, version string, log *slog.Logger) *Server {
	s := &Server{
		mcp:     mcp,
		log:     log,
		version: version,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)

	streamable := mcpserver.NewStreamableHTTPServer(s.mcp)
	s.router.Handle("/mcp", streamable)
	s.router.Handle("/mcp/*", streamable)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok","version":"` + s.version + `"}`))
}
