package supervisor

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thejerf/suture/v4"

	"trending-api/internal/logging"
)

type fakeServer struct {
	listenErr error
	stop      chan struct{}
	shutdowns atomic.Int32
}

func newFakeServer() *fakeServer {
	return &fakeServer{stop: make(chan struct{})}
}

func (f *fakeServer) ListenAndServe() error {
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	if f.shutdowns.Add(1) == 1 {
		close(f.stop)
	}
	return nil
}

type countingSweeper struct{ calls atomic.Int32 }

func (c *countingSweeper) Sweep() int {
	c.calls.Add(1)
	return 1
}

var (
	_ suture.Service = (*HTTPService)(nil)
	_ suture.Service = (*SweeperService)(nil)
)

func TestHTTPService_ShutsDownOnCancel(t *testing.T) {
	srv := newFakeServer()
	svc := NewHTTPService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	require.EqualValues(t, 1, srv.shutdowns.Load())
}

func TestHTTPService_ReportsListenError(t *testing.T) {
	srv := newFakeServer()
	srv.listenErr = errors.New("address in use")

	err := NewHTTPService(srv, time.Second).Serve(context.Background())
	require.ErrorContains(t, err, "address in use")
}

func TestSweeperService_SweepsUntilCanceled(t *testing.T) {
	sw := &countingSweeper{}
	svc := NewSweeperService("test", sw, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	require.Eventually(t, func() bool { return sw.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	require.Equal(t, "cache-sweeper:test", svc.String())
}

func TestTree_RunsServicesAndStops(t *testing.T) {
	tree := NewTree(logging.NewSlogLogger(), TreeConfig{ShutdownTimeout: time.Second})
	srv := newFakeServer()
	sw := &countingSweeper{}
	tree.AddAPIService(NewHTTPService(srv, time.Second))
	tree.AddMaintenanceService(NewSweeperService("test", sw, 5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	require.Eventually(t, func() bool { return sw.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-errCh:
	case <-time.After(3 * time.Second):
		t.Fatal("tree did not stop")
	}
	require.EqualValues(t, 1, srv.shutdowns.Load())
}
