package mcp

import (
	"time"
)

// auditTool records the outcome of a tool call in the operational log and,
// when enabled, the conversion trace.
func (s *Server) auditTool(tool string, start time.Time, input, output string, err error) {
	duration := time.Since(start)
	if err != nil {
		s.logger.Warn("tool call failed", "tool", tool, "input", input, "duration", duration, "error", err)
	} else {
		s.logger.Debug("tool call", "tool", tool, "input", input, "duration", duration)
	}
	s.conversions.Record(tool, input, output, err)
}
