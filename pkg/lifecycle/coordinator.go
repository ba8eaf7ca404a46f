// Package lifecycle coordinates the shutdown path of the service: one
// transition from running to shutting-down, stop hooks in order, a bounded
// best-effort stopped publish, then process exit with a meaningful code.
package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/questforge/questforge/internal/logger"
	"github.com/questforge/questforge/pkg/docstore"
	"github.com/questforge/questforge/pkg/status"
)

// Exit codes reported to the supervisor.
const (
	ExitGraceful = 0
	ExitFault    = 1
)

// publishTimeout bounds the stopped-status writes so a dead store cannot
// stall the exit path.
const publishTimeout = 5 * time.Second

// StopFunc releases one resource during shutdown. Errors are logged, never
// fatal; shutdown always proceeds.
type StopFunc func(ctx context.Context) error

type stopHook struct {
	name string
	stop StopFunc
}

// Coordinator owns the single running -> shutting-down transition. All
// triggers (signals, faults, explicit calls) funnel into Shutdown; only the
// first caller wins, the rest return immediately.
type Coordinator struct {
	shuttingDown atomic.Bool
	done         chan struct{}

	publisher       *status.Publisher
	shutdownTimeout time.Duration
	hooks           []stopHook

	// exit is swappable so tests can observe the code instead of dying.
	exit func(code int)
}

// NewCoordinator creates a coordinator. publisher may be nil when no store
// is reachable; stopped publishes are then skipped.
func NewCoordinator(publisher *status.Publisher, shutdownTimeout time.Duration) *Coordinator {
	return &Coordinator{
		done:            make(chan struct{}),
		publisher:       publisher,
		shutdownTimeout: shutdownTimeout,
		exit:            os.Exit,
	}
}

// SetExitFunc replaces the process exit function. Test use only.
func (c *Coordinator) SetExitFunc(exit func(code int)) {
	c.exit = exit
}

// OnStop registers a hook to run during shutdown. Hooks run in registration
// order. Not safe to call once shutdown may have started.
func (c *Coordinator) OnStop(name string, stop StopFunc) {
	c.hooks = append(c.hooks, stopHook{name: name, stop: stop})
}

// ShuttingDown reports whether the transition has happened.
func (c *Coordinator) ShuttingDown() bool {
	return c.shuttingDown.Load()
}

// Done is closed when shutdown has fully completed. Only observable in
// tests, since the normal exit path terminates the process first.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// WatchSignals installs handlers for SIGINT and SIGTERM. Both trigger the
// same graceful shutdown. Blocks until a signal arrives or ctx is cancelled.
func (c *Coordinator) WatchSignals(ctx context.Context) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		logger.Info("Signal received, shutting down", "signal", sig.String())
		c.Shutdown(ExitGraceful)
	case <-ctx.Done():
	}
}

// HandleFault records a fatal fault and shuts the process down with a
// failure exit code. If shutdown is already in progress the fault is logged
// and the in-flight shutdown keeps its original code.
func (c *Coordinator) HandleFault(err error) {
	logger.Error("Fatal fault", "error", err)
	c.Shutdown(ExitFault)
}

// ReportAsync records a non-fatal asynchronous error. It never triggers
// shutdown; background failures are surfaced in logs only.
func (c *Coordinator) ReportAsync(scope string, err error) {
	if err == nil {
		return
	}
	logger.Error("Async error", "scope", scope, "error", err)
}

// Shutdown performs the shutdown sequence exactly once and exits with code.
// Duplicate calls, from any trigger, return without effect.
func (c *Coordinator) Shutdown(code int) {
	if !c.shuttingDown.CompareAndSwap(false, true) {
		logger.Debug("Shutdown already in progress, ignoring duplicate trigger")
		return
	}

	logger.Info("Shutdown starting", "exit_code", code)

	ctx, cancel := context.WithTimeout(context.Background(), c.shutdownTimeout)
	defer cancel()

	for _, h := range c.hooks {
		if err := h.stop(ctx); err != nil {
			logger.Error("Stop hook failed", "hook", h.name, "error", err)
		} else {
			logger.Debug("Stop hook completed", "hook", h.name)
		}
	}

	c.publishStopped()

	logger.Info("Shutdown complete", "exit_code", code)
	close(c.done)
	c.exit(code)
}

// publishStopped best-effort writes the stopped status to both published
// documents under a short deadline. Failures are logged; exit proceeds
// regardless.
func (c *Coordinator) publishStopped() {
	if c.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := c.publisher.PublishServiceStatus(ctx, docstore.Document{
		"status": status.StatusStopped,
	}); err != nil {
		logger.Warn("Failed to publish stopped status", "error", err)
	}

	c.publisher.PublishAPIURL(ctx, "", status.StatusStopped)
}
