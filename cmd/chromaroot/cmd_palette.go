package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nvandessel/chromaroot/internal/chroma"
	"github.com/nvandessel/chromaroot/internal/palette"
	"github.com/nvandessel/chromaroot/internal/store"
	"github.com/nvandessel/chromaroot/internal/visualization"
	"github.com/spf13/cobra"
)

func newPaletteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Manage the project palette catalog",
		Long: `Save, inspect and share named swatches.

The catalog lives in .chromaroot/palette.db under the project root. Every
swatch keeps the seed it was derived from, so stored colors can be checked
and re-derived.

Examples:
  chromaroot palette add violet --fraction 7/4
  chromaroot palette add amber --digit 1 --angle 0
  chromaroot palette export -o palette.yaml`,
	}

	cmd.AddCommand(
		newPaletteAddCmd(),
		newPaletteListCmd(),
		newPaletteShowCmd(),
		newPaletteRemoveCmd(),
		newPaletteExportCmd(),
		newPaletteImportCmd(),
		newPaletteRenderCmd(),
	)

	return cmd
}

// withStore loads config, opens the palette store and runs fn.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, s store.PaletteStore) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	newLogger(cfg).Debug("palette store opened", "backend", cfg.Store.Backend)

	return fn(cmd.Context(), s)
}

func newPaletteAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Derive a swatch from a seed and save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			fractionText, _ := cmd.Flags().GetString("fraction")
			hasDigit := cmd.Flags().Changed("digit")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			var seed palette.Seed
			switch {
			case hasDigit && fractionText != "":
				return fmt.Errorf("--digit and --fraction are mutually exclusive: %w", chroma.ErrInvalidInput)
			case fractionText != "":
				f, err := chroma.ParseFraction(fractionText)
				if err != nil {
					return err
				}
				seed = palette.FractionSeed(f, rotationFromFlags(cmd, cfg.Color))
			case hasDigit:
				digit, _ := cmd.Flags().GetInt("digit")
				angle, _ := cmd.Flags().GetInt("angle")
				seed = palette.DigitSeed(digit, angle)
			default:
				return fmt.Errorf("one of --digit or --fraction is required: %w", chroma.ErrInvalidInput)
			}

			sw, err := palette.Derive(args[0], seed)
			if err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, s store.PaletteStore) error {
				if err := s.Put(ctx, sw); err != nil {
					return fmt.Errorf("failed to save swatch: %w", err)
				}
				if jsonOut {
					return writeJSON(cmd, sw)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s): %s  %s\n", sw.Name, sw.Seed, sw.CSS, sw.CMYK)
				return nil
			})
		},
	}

	cmd.Flags().Int("digit", 0, "Digit seed")
	cmd.Flags().Int("angle", 0, "Rotation in degrees for a digit seed")
	cmd.Flags().String("fraction", "", "Fraction seed as n/d")
	addRotationFlags(cmd)

	return cmd
}

func newPaletteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved swatches",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			return withStore(cmd, func(ctx context.Context, s store.PaletteStore) error {
				swatches, err := s.List(ctx)
				if err != nil {
					return fmt.Errorf("failed to list swatches: %w", err)
				}

				if jsonOut {
					return writeJSON(cmd, map[string]any{"swatches": swatches, "count": len(swatches)})
				}
				if len(swatches) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No swatches saved.")
					return nil
				}
				printSwatches(cmd, swatches)
				return nil
			})
		},
	}
}

func newPaletteShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one swatch and check it against its seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			return withStore(cmd, func(ctx context.Context, s store.PaletteStore) error {
				sw, err := s.Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get swatch: %w", err)
				}
				if sw == nil {
					return fmt.Errorf("swatch not found: %s", args[0])
				}

				verr := sw.Validate()
				if jsonOut {
					result := map[string]any{"swatch": sw, "valid": verr == nil}
					if verr != nil {
						result["error"] = verr.Error()
					}
					return writeJSON(cmd, result)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Name: %s\n", sw.Name)
				fmt.Fprintf(out, "Seed: %s\n", sw.Seed)
				fmt.Fprintf(out, "CMYK: %s\n", sw.CMYK)
				fmt.Fprintf(out, "CSS:  %s\n", sw.CSS)
				if verr != nil {
					fmt.Fprintf(out, "Warning: %v\n", verr)
				}
				return nil
			})
		},
	}
}

func newPaletteRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a swatch",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			return withStore(cmd, func(ctx context.Context, s store.PaletteStore) error {
				if err := s.Delete(ctx, args[0]); err != nil {
					return fmt.Errorf("failed to remove swatch: %w", err)
				}
				if jsonOut {
					return writeJSON(cmd, map[string]string{"status": "removed", "name": args[0]})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				return nil
			})
		},
	}
}

func newPaletteExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as a YAML palette file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")

			return withStore(cmd, func(ctx context.Context, s store.PaletteStore) error {
				var w io.Writer = cmd.OutOrStdout()
				if output != "" {
					f, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("failed to create %s: %w", output, err)
					}
					defer f.Close()
					w = f
				}

				n, err := store.ExportYAML(ctx, s, w)
				if err != nil {
					return err
				}
				if output != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d swatches to %s\n", n, output)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")

	return cmd
}

func newPaletteImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load swatches from a YAML palette file",
		Long: `Load swatches from a YAML palette file. Colors are re-derived from each
swatch's seed; existing swatches with the same name are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			return withStore(cmd, func(ctx context.Context, s store.PaletteStore) error {
				n, err := store.ImportYAML(ctx, s, f)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, map[string]any{"imported": n, "path": args[0]})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d swatches from %s\n", n, args[0])
				return nil
			})
		},
	}
}

func newPaletteRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the catalog as a DOT graph, JSON or an HTML swatch sheet",
		Long: `Render the catalog for viewing.

Formats:
  dot  - Graphviz graph; swatches rotating the same fraction form a ring
  json - swatch list
  html - standalone swatch sheet

Examples:
  chromaroot palette render | dot -Tsvg > palette.svg
  chromaroot palette render --format html -o palette.html --open`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			formatName, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			open, _ := cmd.Flags().GetBool("open")

			format, err := visualization.ParseFormat(formatName)
			if err != nil {
				return err
			}
			if open && output == "" {
				return fmt.Errorf("--open requires --output")
			}

			var rendered []byte
			err = withStore(cmd, func(ctx context.Context, s store.PaletteStore) error {
				swatches, err := s.List(ctx)
				if err != nil {
					return fmt.Errorf("failed to list swatches: %w", err)
				}

				switch format {
				case visualization.FormatDOT:
					rendered = []byte(visualization.RenderDOT(swatches))
				case visualization.FormatHTML:
					rendered, err = visualization.RenderHTML("chromaroot palette: "+filepath.Base(absOrSelf(root)), swatches)
				case visualization.FormatJSON:
					rendered, err = json.MarshalIndent(map[string]any{"swatches": swatches, "count": len(swatches)}, "", "  ")
					rendered = append(rendered, '\n')
				}
				return err
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(rendered)
				return err
			}

			if err := os.WriteFile(output, rendered, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Palette written to %s\n", output)

			if open {
				abs, err := filepath.Abs(output)
				if err != nil {
					return err
				}
				if err := visualization.OpenBrowser(abs); err != nil {
					return fmt.Errorf("failed to open browser: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("format", string(visualization.FormatDOT), "Output format: dot, json or html")
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	cmd.Flags().Bool("open", false, "Open the written file in the default browser")

	return cmd
}

// absOrSelf returns the absolute form of path, or path itself on error.
func absOrSelf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
