// Package lifecycle sequences service startup and shutdown: dependencies
// first, listener second, and a bounded connection drain on termination.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finbase/wallet-service/internal/version"
)

// InitFunc performs dependency initialization and returns the handler the
// listener will serve. It is invoked exactly once, before the listener is
// bound; if it fails the listener is never opened.
type InitFunc func(ctx context.Context) (http.Handler, error)

type Options struct {
	// Addr is the host:port to bind.
	Addr string
	// DrainTimeout bounds the shutdown wait for in-flight requests.
	// Connections still open when it elapses are closed forcibly.
	DrainTimeout time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Manager owns the service state machine and the HTTP listener.
type Manager struct {
	log        *zap.Logger
	opts       Options
	init       InitFunc
	instanceID string

	state    atomic.Int32
	stopOnce sync.Once

	mu  sync.Mutex
	srv *http.Server
	ln  net.Listener
}

func New(log *zap.Logger, opts Options, init InitFunc) *Manager {
	if opts.DrainTimeout <= 0 {
		opts.DrainTimeout = 15 * time.Second
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 15 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 15 * time.Second
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = 60 * time.Second
	}

	m := &Manager{
		log:        log,
		opts:       opts,
		init:       init,
		instanceID: uuid.NewString(),
	}
	m.state.Store(int32(StateInitializing))
	return m
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	return State(m.state.Load())
}

// Addr returns the bound listener address, or "" before the listener
// exists. With a ":0" bind this is the only way to learn the port.
func (m *Manager) Addr() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ln == nil {
		return ""
	}
	return m.ln.Addr().String()
}

// Start runs dependency initialization, binds the listener exactly once,
// and serves until Shutdown closes the listener. It returns an error if
// initialization or binding fails; the graceful-stop path returns nil.
func (m *Manager) Start(ctx context.Context) error {
	handler, err := m.init(ctx)
	if err != nil {
		m.state.Store(int32(StateStopped))
		return fmt.Errorf("dependency initialization: %w", err)
	}

	ln, err := net.Listen("tcp", m.opts.Addr)
	if err != nil {
		m.state.Store(int32(StateStopped))
		return fmt.Errorf("bind %s: %w", m.opts.Addr, err)
	}

	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  m.opts.ReadTimeout,
		WriteTimeout: m.opts.WriteTimeout,
		IdleTimeout:  m.opts.IdleTimeout,
	}

	m.mu.Lock()
	m.ln = ln
	m.srv = srv
	m.mu.Unlock()

	// A signal that arrived during initialization has already moved the
	// state past Initializing; in that case the listener must not serve.
	if !m.state.CompareAndSwap(int32(StateInitializing), int32(StateReady)) {
		_ = ln.Close()
		return nil
	}

	m.log.Info("wallet-service running",
		zap.String("addr", ln.Addr().String()),
		zap.String("service", version.Service),
		zap.String("version", version.Version),
		zap.String("instance_id", m.instanceID))

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		m.state.Store(int32(StateStopped))
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Shutdown runs the graceful-stop sequence exactly once: stop accepting
// connections, wait up to DrainTimeout for in-flight requests, then close
// whatever remains. Repeated calls (repeated signals) are ignored.
func (m *Manager) Shutdown(signal string) error {
	var err error
	ran := false
	m.stopOnce.Do(func() {
		ran = true
		err = m.drain(signal)
	})
	if !ran {
		m.log.Debug("shutdown already in progress, ignoring signal",
			zap.String("signal", signal))
	}
	return err
}

func (m *Manager) drain(signal string) error {
	// Startup has not bound the listener yet: mark the state so Start
	// refuses to serve, and there is nothing to drain.
	if m.state.CompareAndSwap(int32(StateInitializing), int32(StateStopped)) {
		m.log.Info("shutdown requested before service became ready",
			zap.String("signal", signal))
		return nil
	}
	if !m.state.CompareAndSwap(int32(StateReady), int32(StateShuttingDown)) {
		return nil
	}

	m.log.Info("received shutdown signal, draining connections",
		zap.String("signal", signal),
		zap.Duration("drain_timeout", m.opts.DrainTimeout))

	ctx, cancel := context.WithTimeout(context.Background(), m.opts.DrainTimeout)
	defer cancel()

	m.mu.Lock()
	srv := m.srv
	m.mu.Unlock()

	var err error
	if err = srv.Shutdown(ctx); err != nil {
		m.log.Warn("drain window elapsed, closing remaining connections",
			zap.Error(err))
		if closeErr := srv.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}

	m.state.Store(int32(StateStopped))
	m.log.Info("server closed")

	if err != nil {
		return fmt.Errorf("drain connections: %w", err)
	}
	return nil
}
