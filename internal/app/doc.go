// Package app provides application initialization and lifecycle management
// for the dashboard server. It wires configuration, logging, metrics, the
// snapshot loader and the HTTP layer together at startup and handles
// graceful shutdown.
//
// # Initialization Flow
//
// The typical initialization sequence:
//
//	1. Load configuration from environment and files
//	2. Initialize logging and observability
//	3. Create the snapshot loader and services
//	4. Set up HTTP handlers and middleware
//	5. Configure and start the HTTP server
//	6. Set up graceful shutdown handlers
//
// # Usage
//
// The main entry point is typically:
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// The package handles SIGINT and SIGTERM to ensure active requests are
// completed, the metrics provider is flushed, and log files are closed.
// All initialization errors are returned to the caller; the app never
// calls os.Exit() directly.
package app
