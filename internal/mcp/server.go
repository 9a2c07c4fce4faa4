package mcp

import (
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"rubyfactor/pkg/config"
	"rubyfactor/pkg/refactor"
)

const serverVersion = "0.1.0"

// Server holds the shared state for the MCP tool handlers: the
// refactoring engine, the workspace root used to resolve relative
// paths, and a lock serializing mutating edits.
type Server struct {
	mu     sync.Mutex
	engine *refactor.Engine
	root   string
	logger *log.Logger
}

// NewServer builds an MCP server exposing the refactoring tools for
// the workspace rooted at root.
func NewServer(root string, cfg *config.Config, logger *log.Logger) *server.MCPServer {
	state := &Server{
		engine: refactor.NewEngineWithConfig(cfg),
		root:   root,
		logger: logger,
	}

	s := server.NewMCPServer(
		"rubyfactor-mcp",
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	addExtractLetTool(s, state)
	addExtractMethodTool(s, state)
	addParameterTool(s, state)
	addShowAnchorsTool(s, state)
	addConfigResource(s, state)

	return s
}

// resolveFile turns a tool argument into an absolute path under the
// workspace root.
func (s *Server) resolveFile(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.root, path)
}
