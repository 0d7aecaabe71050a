// ABOUTME: MCP server setup for the healthlog stores.
// ABOUTME: Wraps the MCP server with the auth store and the health data store.
package mcp

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/harperreed/healthlog/internal/auth"
	"github.com/harperreed/healthlog/internal/health"
	"github.com/harperreed/healthlog/internal/logging"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrNotLoggedIn is returned by tools that need a session when none exists.
var ErrNotLoggedIn = errors.New("not logged in")

// Server wraps the MCP server with store access.
type Server struct {
	mcpServer *mcp.Server
	auth      *auth.Store
	health    *health.Store
	logger    *log.Logger
}

// NewServer creates a new MCP server over the given stores. The health
// store follows the auth store's session.
func NewServer(authStore *auth.Store, healthStore *health.Store, logger *log.Logger) (*Server, error) {
	if authStore == nil || healthStore == nil {
		return nil, errors.New("mcp server needs both stores")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "healthlog",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		auth:      authStore,
		health:    healthStore,
		logger:    logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// requireUser returns the session user id, or ErrNotLoggedIn.
func (s *Server) requireUser() (string, error) {
	u := s.auth.User()
	if u == nil {
		return "", ErrNotLoggedIn
	}
	if s.health.UserID() != u.ID {
		if err := s.health.SetUser(u.ID); err != nil {
			return "", err
		}
	}
	return u.ID, nil
}

// syncUser points the health store at the current session, or at no user.
func (s *Server) syncUser() error {
	id := ""
	if u := s.auth.User(); u != nil {
		id = u.ID
	}
	return s.health.SetUser(id)
}
