// Package health implements the startup connectivity gate: the HTTP listener
// is not allowed to open until the document store has been proven reachable.
package health

import (
	"context"
	"errors"

	"github.com/questforge/questforge/pkg/docstore"
	"github.com/questforge/questforge/pkg/retry"
)

// Document paths written by the connectivity checks.
const (
	StatusCollection  = "status"
	ConnectionTestDoc = "connection_test"
	HealthCheckDoc    = "health_check"
)

// VerifyConnection performs one write cycle against the connection test
// document to determine whether the store is reachable right now. The write
// is idempotent: repeated probes overwrite the same document.
//
// Failures are returned as a *docstore.StoreError carrying an HTTP-style
// code and the underlying cause.
func VerifyConnection(ctx context.Context, store docstore.Store) error {
	err := store.Set(ctx, StatusCollection, ConnectionTestDoc, docstore.Document{
		"status":    "connected",
		"timestamp": docstore.ServerTimestamp,
	})
	if err != nil {
		return asConnectivityError("store connectivity probe failed", err)
	}
	return nil
}

// asConnectivityError wraps err as a connectivity failure unless the store
// already produced one, avoiding doubled code annotations in the message.
func asConnectivityError(msg string, err error) error {
	var storeErr *docstore.StoreError
	if errors.As(err, &storeErr) {
		return err
	}
	return docstore.WrapConnectivity(msg, err)
}

// EnsureConnected runs VerifyConnection under the retry policy. It is the
// construction-time gate: exhaustion means the process must not proceed to
// serve traffic, and the error from the final attempt is returned.
func EnsureConnected(ctx context.Context, store docstore.Store, policy retry.Policy) error {
	return retry.Do(ctx, policy, "store connectivity probe", func(ctx context.Context) error {
		return VerifyConnection(ctx, store)
	})
}
