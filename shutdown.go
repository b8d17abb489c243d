package hostmux

import (
	stdctx "context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ShutdownTimeout bounds how long a graceful stop waits for in-flight
// requests before giving up.
const ShutdownTimeout = 10 * time.Second

// Shutdown gracefully stops a running server, waiting for in-flight
// requests to complete or the given context to expire. It is a no-op
// if the server never ran.
func (s *Server) Shutdown(ctx stdctx.Context) error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// interruptChan signals on SIGINT or SIGTERM.
func interruptChan() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

// gracefulStop shuts the server down with the default timeout.
func (s *Server) gracefulStop() error {
	ctx, cancel := stdctx.WithTimeout(stdctx.Background(), ShutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		s.logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}

	return nil
}
