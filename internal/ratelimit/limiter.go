// Package ratelimit provides per-tool token bucket rate limiting for MCP tools.
package ratelimit

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Tool names shared with the MCP server.
const (
	ToolDigit       = "chroma_digit"
	ToolFraction    = "chroma_fraction"
	ToolCSS         = "chroma_css"
	ToolParse       = "chroma_parse"
	ToolVortex      = "chroma_vortex"
	ToolFrequency   = "chroma_frequency"
	ToolWheel       = "chroma_wheel"
	ToolPaletteSave = "chroma_palette_save"
	ToolPaletteList = "chroma_palette_list"
)

// ToolLimiters maps tool names to their rate limiters.
type ToolLimiters map[string]*rate.Limiter

// perMinute builds a limiter allowing n calls per minute with the given burst.
func perMinute(n int, burst int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), burst)
}

// NewToolLimiters creates the default set of per-tool rate limiters.
// Pure conversions are cheap and get generous limits; catalog writes touch disk.
func NewToolLimiters() ToolLimiters {
	return ToolLimiters{
		ToolDigit:       perMinute(600, 50),
		ToolFraction:    perMinute(600, 50),
		ToolCSS:         perMinute(600, 50),
		ToolParse:       perMinute(600, 50),
		ToolVortex:      perMinute(600, 50),
		ToolFrequency:   perMinute(600, 50),
		ToolWheel:       perMinute(120, 10),
		ToolPaletteSave: perMinute(30, 5),
		ToolPaletteList: perMinute(60, 10),
	}
}

// CheckLimit checks the rate limit for a given tool name.
// Returns nil if allowed, or an error if rate limited.
// Tools without a configured limiter are always allowed.
func CheckLimit(limiters ToolLimiters, toolName string) error {
	limiter, ok := limiters[toolName]
	if !ok {
		return nil
	}

	if !limiter.Allow() {
		return fmt.Errorf("rate limit exceeded for %s, please try again shortly", toolName)
	}

	return nil
}
