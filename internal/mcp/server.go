// Package mcp provides an MCP (Model Context Protocol) server exposing the
// chromaroot color operations and palette catalog as tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nvandessel/chromaroot/internal/config"
	"github.com/nvandessel/chromaroot/internal/logging"
	"github.com/nvandessel/chromaroot/internal/ratelimit"
	"github.com/nvandessel/chromaroot/internal/store"
)

// Server wraps the MCP SDK server and provides chromaroot tools.
type Server struct {
	server       *sdk.Server
	store        store.PaletteStore
	root         string
	color        config.ColorConfig
	toolLimiters ratelimit.ToolLimiters
	logger       *slog.Logger
	conversions  *logging.ConversionLog

	closeOnce sync.Once
	closeErr  error
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "chromaroot")
	Version string // Server version
	Root    string // Project root directory

	// Backend selects the palette store when Store is nil.
	Backend string

	// Store overrides the palette store. The server takes ownership.
	Store store.PaletteStore

	// Color supplies defaults for omitted tool arguments.
	Color config.ColorConfig

	Logger      *slog.Logger
	Conversions *logging.ConversionLog
}

// NewServer creates a new MCP server with chromaroot tools.
func NewServer(cfg *Config) (*Server, error) {
	paletteStore := cfg.Store
	if paletteStore == nil {
		var err error
		paletteStore, err = store.Open(cfg.Backend, cfg.Root)
		if err != nil {
			return nil, fmt.Errorf("failed to open palette store: %w", err)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	color := cfg.Color
	if color.WheelSteps == 0 {
		color = config.Default().Color
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	s := &Server{
		server:       mcpServer,
		store:        paletteStore,
		root:         cfg.Root,
		color:        color,
		toolLimiters: ratelimit.NewToolLimiters(),
		logger:       logger,
		conversions:  cfg.Conversions,
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, shutdownSignals()...)
	defer stop()

	s.logger.Info("mcp server starting", "root", s.root, "pid", os.Getpid())
	err := s.server.Run(ctx, &sdk.StdioTransport{})
	s.logger.Info("mcp server stopped", "error", err)

	if cerr := s.Close(); cerr != nil {
		s.logger.Warn("failed to close palette store", "error", cerr)
		if err == nil {
			err = cerr
		}
	}

	return err
}

// Close closes the palette store. It is safe to call more than once; later
// calls return the first result.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.store.Close()
	})
	return s.closeErr
}
