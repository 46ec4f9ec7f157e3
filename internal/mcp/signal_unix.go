//go:build !windows

package mcp

import (
	"os"
	"syscall"
)

// shutdownSignals lists the signals that stop the server.
func shutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM}
}
