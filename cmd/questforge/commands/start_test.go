package commands

import (
	"context"
	"testing"

	"github.com/questforge/questforge/pkg/docstore"
	"github.com/questforge/questforge/pkg/status"
)

func TestStartupStatusDocument_CarriesReachabilityFields(t *testing.T) {
	doc := startupStatusDocument(8080, "http://10.0.0.5:8080", "10.0.0.5")

	if doc["status"] != status.StatusStarted {
		t.Errorf("Expected status started, got %v", doc["status"])
	}
	if doc["port"] != 8080 {
		t.Errorf("Expected port 8080, got %v", doc["port"])
	}
	if doc["ip"] != "10.0.0.5" {
		t.Errorf("Expected ip field, got %v", doc["ip"])
	}
	if doc["url"] != "http://10.0.0.5:8080" {
		t.Errorf("Expected url field, got %v", doc["url"])
	}
}

func TestStartupStatusDocument_PublishedDocument(t *testing.T) {
	store := docstore.NewMemoryStore()
	pub := status.NewPublisher(store, "test")

	err := pub.PublishServiceStatus(context.Background(),
		startupStatusDocument(8080, "http://10.0.0.5:8080", "10.0.0.5"))
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	doc, err := store.Get(context.Background(), status.StatusCollection, status.APIStatusDoc)
	if err != nil {
		t.Fatalf("Status document missing: %v", err)
	}
	for _, field := range []string{"status", "port", "ip", "url", "environment", "instance_id", "timestamp"} {
		if _, ok := doc[field]; !ok {
			t.Errorf("Expected published document to carry %q, got %v", field, doc)
		}
	}
}
