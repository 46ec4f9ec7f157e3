package main

import (
	"fmt"
	"strconv"

	"github.com/nvandessel/chromaroot/internal/chroma"
	"github.com/nvandessel/chromaroot/internal/config"
	"github.com/nvandessel/chromaroot/internal/digitroot"
	"github.com/nvandessel/chromaroot/internal/palette"
	"github.com/spf13/cobra"
)

func newRootDigitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "root <n>",
		Short: "Print the digital root of an integer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid integer %q: %w", args[0], chroma.ErrInvalidInput)
			}

			if jsonOut {
				return writeJSON(cmd, map[string]any{
					"n":         n,
					"root":      digitroot.Of(n),
					"signed":    digitroot.Signed(n),
					"digit_sum": digitroot.Sum(n),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", digitroot.Of(n))
			return nil
		},
	}
}

func newDigitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digit <d>",
		Short: "Map a digit and rotation angle to a color",
		Long: `Map a digit to one of ten hues (|d| mod 10 times 36 degrees), turn it by
--angle degrees and print the CMYK and display colors.

The sign of the digit is ignored. Use -- before negative values:
  chromaroot digit -- -7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			angle, _ := cmd.Flags().GetInt("angle")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			d, err := strconv.Atoi(args[0])
			if err != nil {
				err = fmt.Errorf("invalid digit %q: %w", args[0], chroma.ErrInvalidInput)
				recordConversion(cmd, cfg, "digit", args[0], "", err)
				return err
			}

			cmyk := chroma.DigitAngleToCMYK(d, angle)
			css := chroma.CMYKToCSS(cmyk)
			recordConversion(cmd, cfg, "digit", fmt.Sprintf("%d@%d", d, angle), css, nil)

			if jsonOut {
				return writeJSON(cmd, map[string]any{
					"digit": d,
					"angle": chroma.NormalizeAngle(angle),
					"hue":   chroma.Hue(d, angle),
					"cmyk":  cmyk,
					"css":   css,
				})
			}
			printColor(cmd, cmyk, css)
			return nil
		},
	}

	cmd.Flags().Int("angle", 0, "Rotation in degrees")

	return cmd
}

func newFractionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fraction <n/d>",
		Short: "Map a fraction and rotation step to a color",
		Long: `Map a fraction to a color by the digital root of its numerator, signed by
the fraction's sign, turned by --step times --base-angle degrees.

A zero denominator is an error.

Examples:
  chromaroot fraction 7/4
  chromaroot fraction 7/4 --step 2 --base-angle 30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			f, err := chroma.ParseFraction(args[0])
			if err != nil {
				recordConversion(cmd, cfg, "fraction", args[0], "", err)
				return err
			}

			rot := rotationFromFlags(cmd, cfg.Color)
			cmyk, err := chroma.FractionToCMYK(f, rot)
			if err != nil {
				recordConversion(cmd, cfg, "fraction", f.String(), "", err)
				return err
			}

			css := chroma.CMYKToCSS(cmyk)
			recordConversion(cmd, cfg, "fraction", fmt.Sprintf("%s@%dx%d", f, rot.Step, rot.BaseAngle), css, nil)

			if jsonOut {
				return writeJSON(cmd, map[string]any{
					"fraction": f.String(),
					"digit":    f.Digit(),
					"angle":    rot.Angle(),
					"cmyk":     cmyk,
					"css":      css,
				})
			}
			printColor(cmd, cmyk, css)
			return nil
		},
	}

	addRotationFlags(cmd)

	return cmd
}

func newCSSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "css <c> <m> <y> <k>",
		Short: "Convert CMYK percentages to a #rrggbb display color",
		Long:  `Convert CMYK percentages to a #rrggbb display color. Values outside 0..100 are clamped.`,
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			var channels [4]int
			for i, arg := range args {
				v, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid percentage %q: %w", arg, chroma.ErrInvalidInput)
				}
				channels[i] = v
			}

			cmyk := chroma.CMYK{C: channels[0], M: channels[1], Y: channels[2], K: channels[3]}
			css := chroma.CMYKToCSS(cmyk)

			if jsonOut {
				return writeJSON(cmd, map[string]any{"cmyk": cmyk.Clamped(), "css": css})
			}
			fmt.Fprintln(cmd.OutOrStdout(), css)
			return nil
		},
	}
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <#rrggbb>",
		Short: "Convert a display color to CMYK percentages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cmyk, err := chroma.CSSToCMYK(args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, map[string]any{"cmyk": cmyk})
			}
			fmt.Fprintln(cmd.OutOrStdout(), cmyk)
			return nil
		},
	}
}

func newWheelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wheel <n/d>",
		Short: "Rotate a fraction through successive steps",
		Long: `Print one swatch per rotation step, starting at step 0.

Example:
  chromaroot wheel 7/4 --steps 6 --base-angle 60`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			f, err := chroma.ParseFraction(args[0])
			if err != nil {
				return err
			}

			steps := cfg.Color.WheelSteps
			if cmd.Flags().Changed("steps") {
				steps, _ = cmd.Flags().GetInt("steps")
			}
			baseAngle := cfg.Color.BaseAngle
			if cmd.Flags().Changed("base-angle") {
				baseAngle, _ = cmd.Flags().GetInt("base-angle")
			}

			swatches, err := palette.Wheel(f, steps, baseAngle)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, map[string]any{"swatches": swatches})
			}
			printSwatches(cmd, swatches)
			return nil
		},
	}

	cmd.Flags().Int("steps", 0, "Number of steps (default from config)")
	cmd.Flags().Int("base-angle", 0, "Degrees per step (default from config)")

	return cmd
}

// addRotationFlags registers --step and --base-angle.
func addRotationFlags(cmd *cobra.Command) {
	cmd.Flags().Int("step", 0, "Rotation step index")
	cmd.Flags().Int("base-angle", 0, "Degrees per step (default from config)")
}

// rotationFromFlags reads --step and --base-angle, falling back to the
// configured base angle.
func rotationFromFlags(cmd *cobra.Command, color config.ColorConfig) chroma.Rotation {
	step, _ := cmd.Flags().GetInt("step")
	baseAngle := color.BaseAngle
	if cmd.Flags().Changed("base-angle") {
		baseAngle, _ = cmd.Flags().GetInt("base-angle")
	}
	return chroma.Rotation{Step: step, BaseAngle: baseAngle}
}

// recordConversion appends one entry to the conversion trace when enabled.
func recordConversion(cmd *cobra.Command, cfg *config.ChromaConfig, op, input, output string, err error) {
	cl := openConversionLog(cmd, cfg)
	defer cl.Close()
	cl.Record(op, input, output, err)
}

func printColor(cmd *cobra.Command, cmyk chroma.CMYK, css string) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", css, cmyk)
}

func printSwatches(cmd *cobra.Command, swatches []palette.Swatch) {
	out := cmd.OutOrStdout()
	for _, sw := range swatches {
		fmt.Fprintf(out, "%-20s %s  %s\n", sw.Name, sw.CSS, sw.CMYK)
	}
}
