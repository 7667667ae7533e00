// Package server runs the long-lived parts of a session, the game loop and
// the terminal pump, with graceful shutdown on signals.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// DefaultGrace bounds how long Run waits for stopped services to return.
const DefaultGrace = 2 * time.Second

// Service is a long-running component that can be started and stopped.
type Service interface {
	// Start blocks until the service is stopped, finishes on its own, or fails.
	Start() error
	// Stop asks a running Start to return.
	Stop()
}

// FuncService adapts a start/stop function pair into a Service.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

// Start calls StartFn.
func (f *FuncService) Start() error { return f.StartFn() }

// Stop calls StopFn.
func (f *FuncService) Stop() { f.StopFn() }

// Lifecycle runs a set of named services as one session: the first to end
// ends them all.
type Lifecycle struct {
	// Grace bounds the wait for services to return after Stop.
	Grace time.Duration

	logger   *zap.Logger
	mu       sync.Mutex
	services []namedService
}

type namedService struct {
	name string
	svc  Service
}

type exit struct {
	name string
	err  error
}

// NewLifecycle creates an empty Lifecycle with DefaultGrace.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lifecycle{Grace: DefaultGrace, logger: logger}
}

// Add registers svc under name. Services start in the order added and stop
// in reverse.
//
// Precondition: name is non-empty and svc is non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, svc: svc})
}

// Run starts every service and blocks until SIGINT or SIGTERM, ctx is done,
// or any service returns. Quitting the terminal or finishing the loop ends
// the whole session.
//
// Postcondition: every service has been stopped, and Run has waited up to
// Grace for them to return. Returns the error of the service that ended the
// session, wrapped with its name, or nil.
func (l *Lifecycle) Run(ctx context.Context) error {
	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()

	started := time.Now()
	exits := make(chan exit, len(services))
	for _, ns := range services {
		go func(ns namedService) {
			l.logger.Info("service starting", zap.String("service", ns.name))
			err := ns.svc.Start()
			if err != nil {
				err = fmt.Errorf("service %s: %w", ns.name, err)
			}
			exits <- exit{name: ns.name, err: err}
		}(ns)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	pending := len(services)
	select {
	case sig := <-sigCh:
		l.logger.Info("signal received", zap.String("signal", sig.String()))
	case <-ctx.Done():
		l.logger.Info("context done", zap.Error(ctx.Err()))
	case ex := <-exits:
		pending--
		runErr = ex.err
		if ex.err != nil {
			l.logger.Error("service failed", zap.String("service", ex.name), zap.Error(ex.err))
		} else {
			l.logger.Info("service finished", zap.String("service", ex.name))
		}
	}

	for i := len(services) - 1; i >= 0; i-- {
		l.logger.Debug("service stopping", zap.String("service", services[i].name))
		services[i].svc.Stop()
	}
	l.await(exits, pending)

	l.logger.Info("session ended", zap.Duration("uptime", time.Since(started)))
	return runErr
}

// await collects up to pending exits, giving up after Grace.
func (l *Lifecycle) await(exits <-chan exit, pending int) {
	timeout := time.NewTimer(l.Grace)
	defer timeout.Stop()
	for ; pending > 0; pending-- {
		select {
		case ex := <-exits:
			if ex.err != nil {
				l.logger.Warn("service failed during shutdown", zap.String("service", ex.name), zap.Error(ex.err))
			}
		case <-timeout.C:
			l.logger.Warn("services did not stop in time", zap.Int("remaining", pending))
			return
		}
	}
}
