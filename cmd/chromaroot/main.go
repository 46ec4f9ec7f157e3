package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/nvandessel/chromaroot/internal/config"
	"github.com/nvandessel/chromaroot/internal/logging"
	"github.com/nvandessel/chromaroot/internal/store"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chromaroot",
		Short: "Digital-root color mapping",
		Long: `chromaroot maps numbers to colors.

A digit (or a fraction, by the digital root of its numerator) picks one of
ten hues on the color wheel; a rotation angle turns it. The result is given
as CMYK ink coverage and as a #rrggbb display color. Named results can be
kept in a per-project palette catalog.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for agent consumption)")
	rootCmd.PersistentFlags().String("root", ".", "Project root directory")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.chromaroot/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug or trace (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newRootDigitCmd(),
		newDigitCmd(),
		newFractionCmd(),
		newCSSCmd(),
		newParseCmd(),
		newWheelCmd(),
		newVortexCmd(),
		newPaletteCmd(),
		newBackupCmd(),
		newRestoreCmd(),
		newServeCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return writeJSON(cmd, map[string]string{"version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "chromaroot version %s\n", version)
			return nil
		},
	}
}

// loadConfig resolves configuration from --config, the environment and --log-level.
func loadConfig(cmd *cobra.Command) (*config.ChromaConfig, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// newLogger returns the operational logger. It always writes to stderr so
// that --json output on stdout stays machine readable.
func newLogger(cfg *config.ChromaConfig) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, os.Stderr)
}

// openConversionLog opens the conversion trace under the project root.
// It returns nil at the default level.
func openConversionLog(cmd *cobra.Command, cfg *config.ChromaConfig) *logging.ConversionLog {
	root, _ := cmd.Flags().GetString("root")
	return logging.NewConversionLog(store.LocalDataPath(root), cfg.Logging.Level)
}

// openStore opens the configured palette store for the project root.
func openStore(cmd *cobra.Command, cfg *config.ChromaConfig) (store.PaletteStore, error) {
	root, _ := cmd.Flags().GetString("root")
	s, err := store.Open(cfg.Store.Backend, root)
	if err != nil {
		return nil, fmt.Errorf("failed to open palette store: %w", err)
	}
	return s, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
