package main

import (
	"fmt"
	"strconv"

	"github.com/nvandessel/chromaroot/internal/chroma"
	"github.com/spf13/cobra"
)

func newVortexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vortex",
		Short: "Vortex color and frequency helpers",
	}

	cmd.AddCommand(
		newVortexColorCmd(),
		newVortexFreqCmd(),
	)

	return cmd
}

func newVortexColorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color <channel>",
		Short: "Derive a #RRGGBB color from the digital roots of channel*3, *6 and *9",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			channel, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid channel %q: %w", args[0], chroma.ErrInvalidInput)
			}

			color := chroma.VortexColor(channel)
			if jsonOut {
				return writeJSON(cmd, map[string]any{"channel": channel, "color": color})
			}
			fmt.Fprintln(cmd.OutOrStdout(), color)
			return nil
		},
	}
}

func newVortexFreqCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "freq <base> <multiplier> <divisor>",
		Short: "Compute base*multiplier/divisor",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			var values [3]float64
			for i, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid number %q: %w", arg, chroma.ErrInvalidInput)
				}
				values[i] = v
			}

			freq, err := chroma.VortexFrequency(values[0], values[1], values[2])
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, map[string]any{"frequency": freq})
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(freq, 'g', -1, 64))
			return nil
		},
	}
}
