package supervisor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"trending-api/internal/cache"
	"trending-api/internal/logging"
)

// HTTPServer is the subset of *http.Server the HTTP service drives.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPService runs an HTTP server until its context is canceled, then
// shuts it down gracefully.
type HTTPService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
}

func NewHTTPService(server HTTPServer, shutdownTimeout time.Duration) *HTTPService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPService{server: server, shutdownTimeout: shutdownTimeout}
}

func (s *HTTPService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh
		logging.Info().Msg("HTTP server stopped")
		return ctx.Err()
	}
}

func (s *HTTPService) String() string {
	return "http-server"
}

// SweeperService periodically removes expired cache entries.
type SweeperService struct {
	name     string
	cache    cache.Sweepable
	interval time.Duration
}

func NewSweeperService(name string, c cache.Sweepable, interval time.Duration) *SweeperService {
	if interval <= 0 {
		interval = cache.DefaultSweepInterval
	}
	return &SweeperService{name: name, cache: c, interval: interval}
}

func (s *SweeperService) Serve(ctx context.Context) error {
	cache.RunSweeper(ctx, s.name, s.cache, s.interval)
	return ctx.Err()
}

func (s *SweeperService) String() string {
	return "cache-sweeper:" + s.name
}
