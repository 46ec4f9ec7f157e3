package main

import (
	"fmt"

	"github.com/nvandessel/chromaroot/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"mcp-server"},
		Short:   "Run the MCP server over stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout exposing the color
mapping operations and the palette catalog as tools.

Logs go to stderr. Stop with Ctrl-C or by closing stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			conversions := openConversionLog(cmd, cfg)
			defer conversions.Close()

			server, err := mcp.NewServer(&mcp.Config{
				Name:        "chromaroot",
				Version:     version,
				Root:        root,
				Backend:     cfg.Store.Backend,
				Color:       cfg.Color,
				Logger:      newLogger(cfg),
				Conversions: conversions,
			})
			if err != nil {
				return fmt.Errorf("failed to start MCP server: %w", err)
			}

			return server.Run(cmd.Context())
		},
	}
}
