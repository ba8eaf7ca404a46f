// Package docstore provides access to the remote document store that holds
// Questforge's status and configuration documents.
//
// A document is a small JSON object stored at a fixed "<collection>/<name>"
// key; a collection is a top-level key prefix. The package offers an
// S3-compatible implementation for production and an in-memory implementation
// for tests and local development.
package docstore

import (
	"context"
	"errors"
	"time"
)

// Document is a single JSON document's field set.
type Document map[string]any

// serverTimestamp is the sentinel type behind ServerTimestamp.
type serverTimestamp struct{}

// ServerTimestamp is a sentinel value. Fields set to it are replaced by the
// store with the write-time UTC instant, so callers never stamp documents
// themselves.
var ServerTimestamp = serverTimestamp{}

// ErrDocumentNotFound is returned by Get when no document exists at the path.
var ErrDocumentNotFound = errors.New("document not found")

// Store is the document store handle shared by the lifecycle, health, and
// status components. Implementations must be safe for concurrent use.
type Store interface {
	// Get reads the document at <collection>/<name>.
	Get(ctx context.Context, collection, name string) (Document, error)

	// Set overwrites the document at <collection>/<name> with fields.
	Set(ctx context.Context, collection, name string, fields Document) error

	// Update merge-writes fields into the document at <collection>/<name>,
	// preserving unrelated fields already present.
	Update(ctx context.Context, collection, name string, fields Document) error

	// ListCollections returns the names of all top-level collections.
	ListCollections(ctx context.Context) ([]string, error)
}

// normalizeFields resolves sentinel timestamps and applies the write
// tolerance policy: nil-valued fields are silently dropped rather than
// rejected, so partially-populated payloads write cleanly.
func normalizeFields(fields Document, now time.Time) Document {
	out := make(Document, len(fields))
	for k, v := range fields {
		if v == nil {
			continue
		}
		if _, ok := v.(serverTimestamp); ok {
			out[k] = now.UTC().Format(time.RFC3339Nano)
			continue
		}
		out[k] = v
	}
	return out
}
