package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nvandessel/chromaroot/internal/backup"
	"github.com/nvandessel/chromaroot/internal/config"
	"github.com/nvandessel/chromaroot/internal/pathutil"
	"github.com/nvandessel/chromaroot/internal/store"
	"github.com/spf13/cobra"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot the palette catalog",
		Long: `Write the palette catalog to a checksummed, compressed snapshot.

Default location: <root>/.chromaroot/backups/chromaroot-backup-<timestamp>.crb
Older snapshots are pruned by the backup.retention config (default: last 10).

Examples:
  chromaroot backup                      # Snapshot to the default location
  chromaroot backup --output ~/.chromaroot/backups/before-merge.crb
  chromaroot backup list                 # List snapshots
  chromaroot backup verify <file>        # Verify snapshot integrity
  chromaroot restore <file>              # Restore a snapshot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			outputPath, _ := cmd.Flags().GetString("output")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if outputPath == "" {
				outputPath = backup.GenerateBackupPath(backup.DefaultBackupDir(root))
			} else if err := validateBackupPath(root, outputPath); err != nil {
				return fmt.Errorf("backup path rejected: %w", err)
			}

			header, err := withStoreResult(cmd, cfg, func(ctx context.Context, s store.PaletteStore) (*backup.Header, error) {
				return backup.Backup(ctx, s, outputPath)
			})
			if err != nil {
				return fmt.Errorf("backup failed: %w", err)
			}

			policy, err := buildRetentionPolicy(&cfg.Backup.Retention)
			if err != nil {
				return err
			}
			pruned, err := backup.ApplyRetention(filepath.Dir(outputPath), policy)
			if err != nil {
				newLogger(cfg).Warn("failed to apply retention", "error", err)
			}

			if jsonOut {
				return writeJSON(cmd, map[string]any{
					"path":         outputPath,
					"swatch_count": header.SwatchCount,
					"checksum":     header.Checksum,
					"pruned":       len(pruned),
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Backup created: %d swatches\n", header.SwatchCount)
			fmt.Fprintf(cmd.OutOrStdout(), "  Path: %s\n", outputPath)
			if len(pruned) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "  Pruned %d old snapshots\n", len(pruned))
			}
			return nil
		},
	}

	cmd.Flags().String("output", "", "Output file path (default: auto-generated in <root>/.chromaroot/backups/)")

	cmd.AddCommand(
		newBackupListCmd(),
		newBackupVerifyCmd(),
	)

	return cmd
}

// buildRetentionPolicy constructs a retention policy from config. With no
// count or age rule the last 10 snapshots are kept.
func buildRetentionPolicy(cfg *config.RetentionConfig) (backup.RetentionPolicy, error) {
	var rules backup.AnyPolicy

	if cfg.MaxCount > 0 {
		rules = append(rules, backup.LatestPolicy{Count: cfg.MaxCount})
	}

	if cfg.MaxAge != "" {
		d, err := backup.ParseDuration(cfg.MaxAge)
		if err != nil {
			return nil, fmt.Errorf("invalid backup.retention.max_age: %w", err)
		}
		rules = append(rules, backup.MaxAgePolicy{MaxAge: d})
	}

	var policy backup.RetentionPolicy
	switch len(rules) {
	case 0:
		policy = backup.LatestPolicy{Count: 10}
	case 1:
		policy = rules[0]
	default:
		policy = rules
	}

	if cfg.Distinct {
		policy = backup.DistinctPolicy{Then: policy}
	}
	return policy, nil
}

func validateBackupPath(root, path string) error {
	allowedDirs, err := pathutil.AllowedBackupDirs(root)
	if err != nil {
		return fmt.Errorf("failed to determine allowed backup dirs: %w", err)
	}
	return pathutil.ValidatePath(path, allowedDirs)
}

func newBackupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List palette snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")

			backups, err := backup.ListBackups(backup.DefaultBackupDir(root))
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, map[string]any{"backups": backups, "count": len(backups)})
			}
			if len(backups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No backups found.")
				return nil
			}
			for _, b := range backups {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %3d swatches  %6d bytes  %s\n",
					b.CreatedAt.Format("2006-01-02 15:04:05"), b.SwatchCount, b.Size, filepath.Base(b.Path))
			}
			return nil
		},
	}
}

func newBackupVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>",
		Short: "Verify a snapshot's checksum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			verr := backup.VerifyChecksum(args[0])
			if jsonOut {
				result := map[string]any{"path": args[0], "valid": verr == nil}
				if verr != nil {
					result["error"] = verr.Error()
				}
				if err := writeJSON(cmd, result); err != nil {
					return err
				}
				return verr
			}
			if verr != nil {
				return fmt.Errorf("verification failed for %s: %w", pathutil.RedactPath(args[0]), verr)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s\n", args[0])
			return nil
		},
	}
}

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the palette catalog from a snapshot",
		Long: `Restore swatches from a snapshot written by 'chromaroot backup'.

Modes:
  merge   - Keep existing swatches, skip names already present (default)
  replace - Overwrite from the snapshot, then remove swatches it does not contain

The snapshot must live in ~/.chromaroot/backups/ or <root>/.chromaroot/backups/.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			modeName, _ := cmd.Flags().GetString("mode")

			mode, err := backup.ParseRestoreMode(modeName)
			if err != nil {
				return err
			}

			if err := validateBackupPath(root, inputPath); err != nil {
				return fmt.Errorf("restore path rejected: %w", err)
			}
			if _, err := os.Stat(inputPath); err != nil {
				return fmt.Errorf("snapshot not found: %s", pathutil.RedactPath(inputPath))
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			result, err := withStoreResult(cmd, cfg, func(ctx context.Context, s store.PaletteStore) (*backup.RestoreResult, error) {
				return backup.Restore(ctx, s, inputPath, mode)
			})
			if err != nil {
				return fmt.Errorf("restore failed: %w", err)
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d swatches (%d skipped, %d removed)\n",
				result.Restored, result.Skipped, result.Removed)
			return nil
		},
	}

	cmd.Flags().String("mode", string(backup.RestoreMerge), "Restore mode: merge or replace")

	return cmd
}

// withStoreResult opens the configured palette store, runs fn and closes the store.
func withStoreResult[T any](cmd *cobra.Command, cfg *config.ChromaConfig, fn func(ctx context.Context, s store.PaletteStore) (T, error)) (T, error) {
	var zero T
	s, err := openStore(cmd, cfg)
	if err != nil {
		return zero, err
	}
	defer s.Close()

	return fn(cmd.Context(), s)
}
