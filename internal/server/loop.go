package server

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrQuit is returned by a TickFunc to end the loop without an error.
var ErrQuit = errors.New("quit")

// TickFunc advances the simulation to now, the fixed-step simulation time
// since the loop started.
type TickFunc func(now time.Duration) error

// Loop is a Service calling a TickFunc at a fixed interval. Simulation time
// advances by exactly one interval per tick regardless of wall-clock jitter.
type Loop struct {
	interval time.Duration
	tick     TickFunc
	logger   *zap.Logger

	stop  chan struct{}
	once  sync.Once
	ticks atomic.Int64
}

// NewLoop returns a Loop calling tick every interval.
//
// Precondition: interval > 0 and tick is non-nil (panics otherwise).
func NewLoop(interval time.Duration, tick TickFunc, logger *zap.Logger) *Loop {
	if interval <= 0 {
		panic(fmt.Sprintf("server: NewLoop: interval must be > 0, got %s", interval))
	}
	if tick == nil {
		panic("server: NewLoop: tick must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{interval: interval, tick: tick, logger: logger, stop: make(chan struct{})}
}

// Start runs the loop until Stop is called or the TickFunc returns an error.
//
// Postcondition: returns nil after Stop or ErrQuit, otherwise the tick error.
func (l *Loop) Start() error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		now := time.Duration(l.ticks.Load()) * l.interval
		if err := l.tick(now); err != nil {
			if errors.Is(err, ErrQuit) {
				l.logger.Info("game loop finished", zap.Int64("ticks", l.ticks.Load()))
				return nil
			}
			return fmt.Errorf("tick at %s: %w", now, err)
		}
		l.ticks.Add(1)

		select {
		case <-l.stop:
			return nil
		case <-ticker.C:
		}
	}
}

// Stop ends the loop. It is safe to call more than once.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// Ticks returns the number of completed ticks.
func (l *Loop) Ticks() int64 { return l.ticks.Load() }
