// Package constants provides named constants used throughout the chromaroot codebase.
// This centralizes magic numbers for better maintainability and documentation.
package constants

// Color wheel constants
const (
	// FullTurn is the number of degrees in a hue rotation.
	FullTurn = 360

	// HueStep is the spacing between digit hues. Digits 0-9 sit 36° apart.
	HueStep = 36

	// DefaultBaseAngle is the rotation applied per step when mapping fractions.
	DefaultBaseAngle = 60

	// DefaultWheelSteps is the number of swatches generated for a fraction wheel.
	// Six steps of 60° close the circle.
	DefaultWheelSteps = 6

	// MaxWheelSteps caps wheel generation from CLI and MCP callers.
	MaxWheelSteps = 360
)

// Vortex scale constants
const (
	// VortexScale maps a digital root onto the byte range: 1..9 becomes 31..255.
	VortexScale = 28

	// VortexOffset is added after scaling.
	VortexOffset = 3
)

// Storage constants
const (
	// DataDirName is the per-project and per-user data directory.
	DataDirName = ".chromaroot"

	// PaletteDBName is the SQLite palette catalog file inside DataDirName.
	PaletteDBName = "palette.db"

	// ConversionLogName is the JSONL conversion trace file inside DataDirName.
	ConversionLogName = "conversions.jsonl"

	// MaxSwatchNameLen is the maximum length of a palette entry name.
	MaxSwatchNameLen = 64
)
