// Package server exposes the tourism and weather clients as MCP tools over
// stdio, SSE, or streamable HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/opendatakr/databridge/tourism"
	"github.com/opendatakr/databridge/weather"
)

const (
	serverName = "Korea Tourism API"
	// Version is reported in the MCP handshake and the health endpoint.
	Version = "1.0.0"
)

// Server wires the clients into an MCP tool surface.
type Server struct {
	mcp     *server.MCPServer
	tourism *tourism.Client
	weather *weather.Client
	logger  *zap.Logger
}

// New registers every tool against the given clients. weatherClient may be
// nil; the weather tools are then not registered. logger may be nil.
func New(tourismClient *tourism.Client, weatherClient *weather.Client, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		mcp: server.NewMCPServer(serverName, Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		tourism: tourismClient,
		weather: weatherClient,
		logger:  logger.With(zap.String("component", "mcp_server")),
	}
	s.registerTourismTools()
	if s.weather != nil {
		s.registerWeatherTools()
	}
	return s
}

// ServeStdio serves the MCP protocol over stdin/stdout and blocks until
// the stream closes.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP over stdio")
	return server.ServeStdio(s.mcp)
}

// StreamableHandler returns the streamable-HTTP transport mounted at path.
func (s *Server) StreamableHandler(path string) http.Handler {
	return server.NewStreamableHTTPServer(s.mcp, server.WithEndpointPath(path))
}

// SSEHandler returns the SSE transport.
func (s *Server) SSEHandler() http.Handler {
	return server.NewSSEServer(s.mcp)
}

// HealthHandler reports liveness for HTTP deployments.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":    "healthy",
			"service":   serverName + " MCP Server",
			"version":   Version,
			"transport": os.Getenv("MCP_TRANSPORT"),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
