//go:build windows

package mcp

import "os"

// shutdownSignals lists the signals that stop the server.
// Windows has no SIGTERM.
func shutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
