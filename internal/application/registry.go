package application

import (
	"github.com/mark3labs/mcp-go/server"

	"testrail-mcp-server/internal/domain"
)

// ServerName identifies this server to MCP clients during the handshake.
const ServerName = "testrail-mcp-server"

// NewMCPServer assembles the MCP server and registers the tools of every
// resource family according to the configured tool mode. All families share
// the same invoker; each tool call is independent of every other.
func NewMCPServer(version string, cfg *domain.Config, invoker domain.Invoker, logger *StructuredLogger) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
	)

	for _, family := range domain.Families() {
		NewToolProvider(family, invoker, logger).Register(s, cfg.Tools.Mode)
	}

	return s
}
