package main

import (
	"fmt"

	"github.com/nvandessel/chromaroot/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect chromaroot configuration",
		Long: `Inspect chromaroot configuration.

Configuration is read from ~/.chromaroot/config.yaml (or --config) and then
from CHROMAROOT_BASE_ANGLE, CHROMAROOT_WHEEL_STEPS, CHROMAROOT_STORE and
CHROMAROOT_LOG_LEVEL.`,
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigPathCmd(),
	)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, cfg)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the default config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return fmt.Errorf("failed to resolve config path: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
