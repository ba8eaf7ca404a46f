package docstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation of Store, used by tests and
// local development. Documents are deep-copied on the way in and out so
// callers cannot mutate stored state.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
	now  func() time.Time
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]Document),
		now:  time.Now,
	}
}

// SetClock overrides the write-timestamp clock. Tests only.
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// Get reads the document at <collection>/<name>.
func (m *MemoryStore) Get(_ context.Context, collection, name string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[key(collection, name)]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return copyDocument(doc), nil
}

// Set overwrites the document at <collection>/<name>.
func (m *MemoryStore) Set(_ context.Context, collection, name string, fields Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[key(collection, name)] = normalizeFields(fields, m.now())
	return nil
}

// Update merge-writes fields, preserving unrelated fields.
func (m *MemoryStore) Update(_ context.Context, collection, name string, fields Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(collection, name)
	merged := copyDocument(m.docs[k])
	if merged == nil {
		merged = make(Document)
	}
	for field, v := range normalizeFields(fields, m.now()) {
		merged[field] = v
	}
	m.docs[k] = merged
	return nil
}

// ListCollections returns the sorted set of top-level prefixes.
func (m *MemoryStore) ListCollections(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{})
	for k := range m.docs {
		if idx := strings.Index(k, "/"); idx > 0 {
			seen[k[:idx]] = struct{}{}
		}
	}

	collections := make([]string, 0, len(seen))
	for c := range seen {
		collections = append(collections, c)
	}
	sort.Strings(collections)
	return collections, nil
}

func copyDocument(doc Document) Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
