package health

import (
	"context"
	"fmt"
	"strings"

	"github.com/questforge/questforge/internal/logger"
	"github.com/questforge/questforge/pkg/docstore"
	"github.com/questforge/questforge/pkg/metrics"
	"github.com/questforge/questforge/pkg/retry"
)

// ConfigError reports required settings that are absent. It is never
// retried: a static configuration problem cannot resolve itself.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("required configuration missing: %s", strings.Join(e.Missing, ", "))
}

// Runner is the startup gate run before the HTTP listener opens, distinct
// from request-time health probes.
type Runner struct {
	store  docstore.Store
	policy retry.Policy

	// requiredSettings yields the names of required settings that are
	// currently unset; injected so the gate stays decoupled from the
	// config package's layout.
	requiredSettings func() []string
}

// NewRunner creates a startup gate over the given store.
func NewRunner(store docstore.Store, policy retry.Policy, requiredSettings func() []string) *Runner {
	return &Runner{
		store:            store,
		policy:           policy,
		requiredSettings: requiredSettings,
	}
}

// Run executes the startup gate:
//
//  1. Required-settings check. Missing settings fail immediately with a
//     *ConfigError, without touching the store.
//  2. Write the health check status document.
//  3. List top-level collections as a secondary reachability signal. The
//     names are logged for diagnostics and otherwise unused.
//
// Steps 2-3 are retried as one unit under the runner's policy. An error
// return means the caller must not start accepting connections.
func (r *Runner) Run(ctx context.Context) error {
	if r.requiredSettings != nil {
		if missing := r.requiredSettings(); len(missing) > 0 {
			return &ConfigError{Missing: missing}
		}
	}

	err := retry.Do(ctx, r.policy, "startup health check", func(ctx context.Context) error {
		if err := r.store.Set(ctx, StatusCollection, HealthCheckDoc, docstore.Document{
			"status":    "healthy",
			"timestamp": docstore.ServerTimestamp,
		}); err != nil {
			return asConnectivityError("health check write failed", err)
		}

		collections, err := r.store.ListCollections(ctx)
		if err != nil {
			return asConnectivityError("health check collection listing failed", err)
		}

		logger.Debug("Store collections visible", "count", len(collections), "names", strings.Join(collections, ","))
		return nil
	})

	metrics.ObserveHealthCheck(err == nil)

	if err != nil {
		return err
	}

	logger.Info("Startup health check passed")
	return nil
}
