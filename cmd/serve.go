package cmd

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"testrail-mcp-server/internal/application"
	"testrail-mcp-server/internal/domain"
	"testrail-mcp-server/internal/infrastructure"
)

// runServe loads the configuration, wires the TestRail client, and serves
// MCP over the configured transport until the client disconnects or the
// process receives a shutdown signal.
func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	config, err := domain.LoadConfig(flagConfig)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Build the authenticated TestRail client
	creds := domain.CredentialsFromConfig(config)
	httpClient, err := domain.NewAuthenticatedClient(creds)
	if err != nil {
		return fmt.Errorf("failed to create authenticated client: %w", err)
	}
	client := infrastructure.NewTestRailClient(config.TestRail.BaseURL, httpClient)

	// Assemble the MCP server with every resource family's tools registered
	logger := application.NewStructuredLogger()
	s := application.NewMCPServer(appVersion, config, client, logger)

	if config.Transport.Type == "http" {
		return serveHTTP(s, config)
	}
	return serveStdio(s, config)
}

// serveStdio serves MCP on stdin/stdout. Logging goes to stderr so stdout
// stays a clean protocol channel.
func serveStdio(s *server.MCPServer, config *domain.Config) error {
	log.Printf("Starting MCP server (stdio transport, %s tools, TestRail at %s)",
		config.Tools.Mode, config.TestRail.BaseURL)

	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("stdio server failed: %w", err)
	}

	log.Println("Server shutdown complete")
	return nil
}

// serveHTTP serves MCP over streamable HTTP and shuts down gracefully on
// SIGINT or SIGTERM.
func serveHTTP(s *server.MCPServer, config *domain.Config) error {
	addr := net.JoinHostPort(config.Transport.HTTP.Host, strconv.Itoa(config.Transport.HTTP.Port))
	httpServer := server.NewStreamableHTTPServer(s)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start the server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server (HTTP transport on %s, %s tools, TestRail at %s)",
			addr, config.Tools.Mode, config.TestRail.BaseURL)
		errChan <- httpServer.Start(addr)
	}()

	// Wait for a shutdown signal or a server error
	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v, shutting down", sig)
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	log.Println("Server shutdown complete")
	return nil
}
