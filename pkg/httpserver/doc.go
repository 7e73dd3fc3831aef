// Package httpserver wraps net/http for servers that are started and stopped
// many times on the same port.
//
// Server adds to *http.Server:
//
//   - Start binds the listener before returning, so bind failures surface to
//     the caller and the port is known to be held. Addr reports the bound
//     address, which matters when listening on port 0.
//   - Shutdown returns only after the listener is closed and the serve loop
//     has exited. Connections that outlive the shutdown timeout are closed
//     forcibly, so a fixed port can be bound again right away.
//   - Run is Start plus a blocking wait for context cancellation or an
//     interrupt/TERM signal, followed by Shutdown.
//   - WithStartHook and WithStopHook run after the bind and after shutdown.
//
// HealthCheckHandler serves liveness and readiness probes.
//
// # Usage
//
//	srv := httpserver.New(httpserver.WithAddr("127.0.0.1:3000"))
//	if err := srv.Start(ctx, handler); err != nil {
//		return err
//	}
//	defer srv.Shutdown(context.Background())
//
// # Errors
//
// Start and Run wrap listen errors with ErrStart, while Shutdown wraps
// underlying shutdown errors with ErrShutdown. Use errors.Is to distinguish them.
package httpserver
