package testsupport

import (
	"context"
	"testing"

	"langengine/internal/config"
	"langengine/internal/store"
)

// MustOpenStore opens the configured store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) store.Store {
	t.Helper()

	s, err := store.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}
