package mcp

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nvandessel/chromaroot/internal/chroma"
	"github.com/nvandessel/chromaroot/internal/palette"
	"github.com/nvandessel/chromaroot/internal/ratelimit"
	"github.com/nvandessel/chromaroot/internal/sanitize"
)

// registerTools registers all chromaroot MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolDigit,
		Description: "Map a digit and rotation angle to a CMYK print color and a #rrggbb display color",
	}, s.handleDigit)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolFraction,
		Description: "Map a fraction (digital root of the numerator) and rotation step to a CMYK color; rejects zero denominators",
	}, s.handleFraction)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolCSS,
		Description: "Convert CMYK percentages to a #rrggbb display color, clamping out-of-range channels",
	}, s.handleCSS)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolParse,
		Description: "Convert a #rrggbb display color to CMYK percentages",
	}, s.handleParse)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolVortex,
		Description: "Derive an uppercase #RRGGBB vortex color from a channel seed",
	}, s.handleVortex)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolFrequency,
		Description: "Compute base*multiplier/divisor; rejects a zero divisor",
	}, s.handleFrequency)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolWheel,
		Description: "Rotate a fraction through successive steps and return one swatch per step",
	}, s.handleWheel)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolPaletteSave,
		Description: "Derive a swatch from a digit or fraction seed and save it in the palette catalog",
	}, s.handlePaletteSave)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolPaletteList,
		Description: "List every swatch in the palette catalog",
	}, s.handlePaletteList)
}

func (s *Server) handleDigit(ctx context.Context, req *sdk.CallToolRequest, args DigitInput) (_ *sdk.CallToolResult, out DigitOutput, retErr error) {
	start := time.Now()
	input := fmt.Sprintf("%d@%d", args.Digit, args.Angle)
	defer func() { s.auditTool(ratelimit.ToolDigit, start, input, out.CSS, retErr) }()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolDigit); err != nil {
		return nil, DigitOutput{}, err
	}

	cmyk := chroma.DigitAngleToCMYK(args.Digit, args.Angle)
	return nil, DigitOutput{
		Digit: args.Digit,
		Angle: chroma.NormalizeAngle(args.Angle),
		Hue:   chroma.Hue(args.Digit, args.Angle),
		CMYK:  cmyk,
		CSS:   chroma.CMYKToCSS(cmyk),
	}, nil
}

func (s *Server) handleFraction(ctx context.Context, req *sdk.CallToolRequest, args FractionInput) (_ *sdk.CallToolResult, out FractionOutput, retErr error) {
	start := time.Now()
	defer func() { s.auditTool(ratelimit.ToolFraction, start, args.Fraction, out.CSS, retErr) }()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolFraction); err != nil {
		return nil, FractionOutput{}, err
	}

	f, err := chroma.ParseFraction(args.Fraction)
	if err != nil {
		return nil, FractionOutput{}, err
	}

	rot := chroma.Rotation{Step: args.Step, BaseAngle: s.baseAngle(args.BaseAngle)}
	cmyk, err := chroma.FractionToCMYK(f, rot)
	if err != nil {
		return nil, FractionOutput{}, err
	}

	return nil, FractionOutput{
		Fraction: f.String(),
		Digit:    f.Digit(),
		Angle:    rot.Angle(),
		CMYK:     cmyk,
		CSS:      chroma.CMYKToCSS(cmyk),
	}, nil
}

func (s *Server) handleCSS(ctx context.Context, req *sdk.CallToolRequest, args CSSInput) (_ *sdk.CallToolResult, out CSSOutput, retErr error) {
	start := time.Now()
	in := chroma.CMYK{C: args.C, M: args.M, Y: args.Y, K: args.K}
	defer func() { s.auditTool(ratelimit.ToolCSS, start, in.String(), out.CSS, retErr) }()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolCSS); err != nil {
		return nil, CSSOutput{}, err
	}

	return nil, CSSOutput{CMYK: in.Clamped(), CSS: chroma.CMYKToCSS(in)}, nil
}

func (s *Server) handleParse(ctx context.Context, req *sdk.CallToolRequest, args ParseInput) (_ *sdk.CallToolResult, out ParseOutput, retErr error) {
	start := time.Now()
	defer func() { s.auditTool(ratelimit.ToolParse, start, args.Hex, out.CMYK.String(), retErr) }()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolParse); err != nil {
		return nil, ParseOutput{}, err
	}

	cmyk, err := chroma.CSSToCMYK(args.Hex)
	if err != nil {
		return nil, ParseOutput{}, err
	}
	return nil, ParseOutput{CMYK: cmyk}, nil
}

func (s *Server) handleVortex(ctx context.Context, req *sdk.CallToolRequest, args VortexInput) (_ *sdk.CallToolResult, out VortexOutput, retErr error) {
	start := time.Now()
	defer func() { s.auditTool(ratelimit.ToolVortex, start, fmt.Sprint(args.Channel), out.Color, retErr) }()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolVortex); err != nil {
		return nil, VortexOutput{}, err
	}

	return nil, VortexOutput{Channel: args.Channel, Color: chroma.VortexColor(args.Channel)}, nil
}

func (s *Server) handleFrequency(ctx context.Context, req *sdk.CallToolRequest, args FrequencyInput) (_ *sdk.CallToolResult, out FrequencyOutput, retErr error) {
	start := time.Now()
	input := fmt.Sprintf("%g*%g/%g", args.Base, args.Multiplier, args.Divisor)
	defer func() { s.auditTool(ratelimit.ToolFrequency, start, input, fmt.Sprint(out.Frequency), retErr) }()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolFrequency); err != nil {
		return nil, FrequencyOutput{}, err
	}

	freq, err := chroma.VortexFrequency(args.Base, args.Multiplier, args.Divisor)
	if err != nil {
		return nil, FrequencyOutput{}, err
	}
	return nil, FrequencyOutput{Frequency: freq}, nil
}

func (s *Server) handleWheel(ctx context.Context, req *sdk.CallToolRequest, args WheelInput) (_ *sdk.CallToolResult, out WheelOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool(ratelimit.ToolWheel, start, args.Fraction, fmt.Sprintf("%d swatches", len(out.Swatches)), retErr)
	}()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolWheel); err != nil {
		return nil, WheelOutput{}, err
	}

	f, err := chroma.ParseFraction(args.Fraction)
	if err != nil {
		return nil, WheelOutput{}, err
	}

	steps := args.Steps
	if steps == 0 {
		steps = s.color.WheelSteps
	}

	swatches, err := palette.Wheel(f, steps, s.baseAngle(args.BaseAngle))
	if err != nil {
		return nil, WheelOutput{}, err
	}
	return nil, WheelOutput{Swatches: swatches}, nil
}

func (s *Server) handlePaletteSave(ctx context.Context, req *sdk.CallToolRequest, args PaletteSaveInput) (_ *sdk.CallToolResult, out PaletteSaveOutput, retErr error) {
	start := time.Now()
	defer func() { s.auditTool(ratelimit.ToolPaletteSave, start, args.Name, out.Swatch.CSS, retErr) }()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolPaletteSave); err != nil {
		return nil, PaletteSaveOutput{}, err
	}

	var seed palette.Seed
	switch {
	case args.Fraction != "" && args.Digit != nil:
		return nil, PaletteSaveOutput{}, fmt.Errorf("set either digit or fraction, not both: %w", chroma.ErrInvalidInput)
	case args.Fraction != "":
		f, err := chroma.ParseFraction(args.Fraction)
		if err != nil {
			return nil, PaletteSaveOutput{}, err
		}
		seed = palette.FractionSeed(f, chroma.Rotation{Step: args.Step, BaseAngle: s.baseAngle(args.BaseAngle)})
	case args.Digit != nil:
		seed = palette.DigitSeed(*args.Digit, args.Angle)
	default:
		return nil, PaletteSaveOutput{}, fmt.Errorf("a digit or fraction seed is required: %w", chroma.ErrInvalidInput)
	}

	sw, err := palette.Derive(sanitize.SwatchName(args.Name), seed)
	if err != nil {
		return nil, PaletteSaveOutput{}, err
	}
	if err := s.store.Put(ctx, sw); err != nil {
		return nil, PaletteSaveOutput{}, fmt.Errorf("failed to save swatch: %w", err)
	}

	return nil, PaletteSaveOutput{Swatch: sw}, nil
}

func (s *Server) handlePaletteList(ctx context.Context, req *sdk.CallToolRequest, args PaletteListInput) (_ *sdk.CallToolResult, out PaletteListOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool(ratelimit.ToolPaletteList, start, "", fmt.Sprintf("%d swatches", out.Count), retErr)
	}()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolPaletteList); err != nil {
		return nil, PaletteListOutput{}, err
	}

	swatches, err := s.store.List(ctx)
	if err != nil {
		return nil, PaletteListOutput{}, fmt.Errorf("failed to list swatches: %w", err)
	}
	return nil, PaletteListOutput{Swatches: swatches, Count: len(swatches)}, nil
}

// baseAngle returns the requested angle or the configured default.
func (s *Server) baseAngle(requested *int) int {
	if requested != nil {
		return *requested
	}
	return s.color.BaseAngle
}
