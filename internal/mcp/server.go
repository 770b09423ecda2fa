package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/fndoc/internal/docmeta"
	"github.com/mvp-joe/fndoc/internal/indexer"
)

// ServerConfig configures the MCP server.
type ServerConfig struct {
	RootDir     string
	Annotations docmeta.AnnotationConfig
	CacheSize   int
	Version     string
}

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	cache *indexer.ResultCache
	mcp   *server.MCPServer
}

// NewMCPServer creates an MCP server exposing the extraction tool.
func NewMCPServer(config ServerConfig) (*MCPServer, error) {
	cache, err := indexer.NewResultCache(config.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	version := config.Version
	if version == "" {
		version = "dev"
	}

	mcpServer := server.NewMCPServer(
		"fndoc-mcp",
		version,
		server.WithToolCapabilities(true),
	)

	AddExtractTool(mcpServer, NewExtractHandler(config.RootDir, config.Annotations, cache))

	return &MCPServer{
		cache: cache,
		mcp:   mcpServer,
	}, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases all resources.
func (s *MCPServer) Close() error {
	if s.cache != nil {
		s.cache.Close()
	}
	return nil
}
