package cache

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"site-widgets/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { storage.Close(db) })

	store, err := Open(db)
	if err != nil {
		t.Fatalf("failed to open cache store: %v", err)
	}
	return store
}

func TestSetGetRoundtrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set("slot", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := store.Get("slot")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !bytes.Equal(got, []byte("payload")) {
		t.Errorf("got %q, want %q", got, "payload")
	}
}

func TestSetOverwritesExistingEntry(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set("slot", []byte("old"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Set("slot", []byte("new"), time.Minute); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	got, err := store.Get("slot")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("got %q, want %q", got, "new")
	}
}

func TestGetMissesAbsentAndExpired(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Get("absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("absent key: got %v, want ErrNotFound", err)
	}

	if err := store.Set("expired", []byte("stale"), -time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, err := store.Get("expired"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired key: got %v, want ErrNotFound", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set("slot", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Delete("slot"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get("slot"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete: got %v, want ErrNotFound", err)
	}

	// Deleting an absent slot is not an error.
	if err := store.Delete("slot"); err != nil {
		t.Errorf("second delete failed: %v", err)
	}
}
