// Package server runs the public HTTP listener and the optional admin
// listener, and drains them on shutdown.
//
// # Basic Usage
//
//	ctx, stop := cli.SignalContext(context.Background())
//	defer stop()
//
//	srv := server.New(&cfg.Server, artHandler, logger)
//	srv.SetAdmin(cfg.Telemetry.Metrics.ListenAddress, adminMux)
//	if err := srv.Run(ctx); err != nil {
//	    return err
//	}
//
// # Routes
//
// The public listener serves exactly GET / (HEAD is implied). Other paths
// answer 404 and other methods on / answer 405.
//
// # Middleware Chain
//
// Requests pass through the following middleware (outermost first):
//  1. RequestID: reads or generates X-Request-ID
//  2. Logging: one access log record per request
//  3. Recovery: turns panics into the generic 500
//
// # Graceful Shutdown
//
// Run binds the listeners, then runs the serve loops and a shutdown waiter
// as an errgroup. When ctx is cancelled (SIGINT/SIGTERM) or a serve loop
// fails, the waiter:
//  1. Logs "initiating graceful shutdown" at warn level
//  2. Stops accepting new connections
//  3. Waits for in-flight requests, bounded by shutdown_timeout when set
//
// Run returns nil after a clean drain and an error when binding or serving
// fails.
package server
