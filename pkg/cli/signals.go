package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ShutdownSignals are the signals that trigger a graceful shutdown.
var ShutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// SignalContext returns a context that is cancelled on the first SIGINT or
// SIGTERM. Calling stop restores default signal behavior, so a second
// signal kills the process.
func SignalContext(parent context.Context) (ctx context.Context, stop context.CancelFunc) {
	return signal.NotifyContext(parent, ShutdownSignals...)
}
