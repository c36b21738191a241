package testutil

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/preston-bernstein/epl-compare-service/internal/poller"
)

// FakePoller records Start and Stop calls and reports a fixed status.
type FakePoller struct {
	StopErr error
	State   poller.Status

	starts atomic.Int32
	stops  atomic.Int32
}

func (p *FakePoller) Start(context.Context) { p.starts.Add(1) }

func (p *FakePoller) Stop(context.Context) error {
	p.stops.Add(1)
	return p.StopErr
}

func (p *FakePoller) Status() poller.Status { return p.State }

// Calls returns how many times Start and Stop ran.
func (p *FakePoller) Calls() (starts, stops int) {
	return int(p.starts.Load()), int(p.stops.Load())
}

// FakeServer stands in for the server's listener. ListenAndServe returns
// ListenErr straight away. Shutdown waits for Release to close, or for its
// context, when Release is set.
type FakeServer struct {
	Address     string
	Mux         http.Handler
	ListenErr   error
	ShutdownErr error
	Release     chan struct{}

	listens   atomic.Int32
	shutdowns atomic.Int32
}

func (s *FakeServer) ListenAndServe() error {
	s.listens.Add(1)
	return s.ListenErr
}

func (s *FakeServer) Shutdown(ctx context.Context) error {
	s.shutdowns.Add(1)
	if s.Release == nil {
		return s.ShutdownErr
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.Release:
		return s.ShutdownErr
	}
}

func (s *FakeServer) Addr() string {
	if s.Address == "" {
		return ":0"
	}
	return s.Address
}

func (s *FakeServer) Handler() http.Handler {
	if s.Mux == nil {
		return http.NotFoundHandler()
	}
	return s.Mux
}

// Calls returns how many times ListenAndServe and Shutdown ran.
func (s *FakeServer) Calls() (listens, shutdowns int) {
	return int(s.listens.Load()), int(s.shutdowns.Load())
}
