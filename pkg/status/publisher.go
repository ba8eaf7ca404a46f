// Package status publishes the service's liveness and location into the
// document store. Documents live at fixed paths and are merge-written so
// unrelated fields survive each publish.
package status

import (
	"context"

	"github.com/google/uuid"

	"github.com/questforge/questforge/internal/logger"
	"github.com/questforge/questforge/pkg/docstore"
	"github.com/questforge/questforge/pkg/metrics"
)

// Document paths owned by the publisher.
const (
	StatusCollection = "status"
	ConfigCollection = "config"
	APIStatusDoc     = "api_status"
	APIConfigDoc     = "api"
)

// Service status values written to the store.
const (
	StatusStarted = "started"
	StatusStopped = "stopped"
)

// Publisher writes structured status documents for this service instance.
type Publisher struct {
	store       docstore.Store
	environment string
	instanceID  string
}

// NewPublisher creates a publisher bound to the given store. Each process
// gets a fresh instance identifier so overlapping deployments are
// distinguishable in the published documents.
func NewPublisher(store docstore.Store, environment string) *Publisher {
	return &Publisher{
		store:       store,
		environment: environment,
		instanceID:  uuid.NewString(),
	}
}

// InstanceID returns this process's published instance identifier.
func (p *Publisher) InstanceID() string {
	return p.instanceID
}

// PublishServiceStatus merge-writes fields plus a server timestamp into the
// api_status document. Used at startup (status=started, with port/ip/url)
// and at shutdown (status=stopped). The write is idempotent; no transactional
// guarantee exists across documents.
func (p *Publisher) PublishServiceStatus(ctx context.Context, fields docstore.Document) error {
	doc := docstore.Document{
		"environment": p.environment,
		"instance_id": p.instanceID,
		"timestamp":   docstore.ServerTimestamp,
	}
	for k, v := range fields {
		doc[k] = v
	}

	err := p.store.Update(ctx, StatusCollection, APIStatusDoc, doc)
	metrics.ObserveStatusPublish(APIStatusDoc, err == nil)
	return err
}

// PublishAPIURL merge-writes the externally-visible base URL and its status
// into the config/api document. An empty url leaves the stored base_url
// untouched. Failures are logged and swallowed: this is a best-effort side
// channel, never a correctness dependency.
func (p *Publisher) PublishAPIURL(ctx context.Context, url, status string) {
	doc := docstore.Document{
		"status":      status,
		"environment": p.environment,
		"timestamp":   docstore.ServerTimestamp,
	}
	if url != "" {
		doc["base_url"] = url
	}

	err := p.store.Update(ctx, ConfigCollection, APIConfigDoc, doc)
	metrics.ObserveStatusPublish(APIConfigDoc, err == nil)
	if err != nil {
		logger.Error("Failed to publish API URL", "url", url, "status", status, "error", err)
	}
}
