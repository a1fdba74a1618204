package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Set(ctx, NamespaceGeocode, "boracay", []byte(`{"lat":11.96}`), time.Minute, ""); err != nil {
		t.Fatal(err)
	}

	value, ok, err := s.Get(ctx, NamespaceGeocode, "boracay")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if string(value) != `{"lat":11.96}` {
		t.Errorf("value = %s", value)
	}

	if _, ok, _ := s.Get(ctx, NamespaceGeocode, "missing"); ok {
		t.Error("missing key reported present")
	}
}

func TestMemoryStore_NamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	s.Set(ctx, NamespaceGeocode, "k", []byte("geo"), time.Minute, "")
	s.Set(ctx, NamespacePhoto, "k", []byte("photo"), time.Minute, "")

	value, _, _ := s.Get(ctx, NamespacePhoto, "k")
	if string(value) != "photo" {
		t.Errorf("value = %s", value)
	}

	if err := s.Clear(ctx, NamespacePhoto); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, NamespacePhoto, "k"); ok {
		t.Error("cleared namespace still serves entries")
	}
	if _, ok, _ := s.Get(ctx, NamespaceGeocode, "k"); !ok {
		t.Error("Clear leaked into another namespace")
	}
}

func TestMemoryStore_ExpiredEntryDeletedOnRead(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	s.Set(ctx, NamespaceAPI, "k", []byte("v"), 5*time.Millisecond, "")
	time.Sleep(20 * time.Millisecond)

	if _, ok, _ := s.Get(ctx, NamespaceAPI, "k"); ok {
		t.Fatal("expired entry reported present")
	}

	// The read must have removed it, so a sweep finds nothing.
	swept, err := s.Sweep(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if swept != 0 {
		t.Errorf("swept = %d, want 0 after lazy deletion", swept)
	}
}

func TestMemoryStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	s.Set(ctx, NamespaceAPI, "k", []byte("old"), time.Minute, "owner-1")
	s.Set(ctx, NamespaceAPI, "k", []byte("new"), time.Minute, "owner-2")

	value, _, _ := s.Get(ctx, NamespaceAPI, "k")
	if string(value) != "new" {
		t.Errorf("value = %s", value)
	}

	// The secondary key was replaced wholesale with the entry.
	n, _ := s.InvalidateBy(ctx, NamespaceAPI, "owner-1")
	if n != 0 {
		t.Errorf("stale secondary key still indexed, removed %d", n)
	}
}

func TestMemoryStore_InvalidateBy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	s.Set(ctx, NamespaceSnapshot, "trip-1", []byte("a"), time.Minute, "user-1")
	s.Set(ctx, NamespaceSnapshot, "trip-2", []byte("b"), time.Minute, "user-1")
	s.Set(ctx, NamespaceSnapshot, "trip-3", []byte("c"), time.Minute, "user-2")

	n, err := s.InvalidateBy(ctx, NamespaceSnapshot, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("removed %d, want 2", n)
	}
	if _, ok, _ := s.Get(ctx, NamespaceSnapshot, "trip-1"); ok {
		t.Error("invalidated entry still present")
	}
	if _, ok, _ := s.Get(ctx, NamespaceSnapshot, "trip-3"); !ok {
		t.Error("other owner's entry was dropped")
	}
}

func TestMemoryStore_Sweep(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	s.Set(ctx, NamespaceGeocode, "short", []byte("a"), 5*time.Millisecond, "")
	s.Set(ctx, NamespaceGeocode, "long", []byte("b"), time.Minute, "")
	s.Set(ctx, NamespacePhoto, "short", []byte("c"), 5*time.Millisecond, "")
	time.Sleep(20 * time.Millisecond)

	swept, err := s.Sweep(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if swept != 2 {
		t.Errorf("swept = %d, want 2", swept)
	}
	if _, ok, _ := s.Get(ctx, NamespaceGeocode, "long"); !ok {
		t.Error("live entry swept")
	}
}

func TestMemoryStore_SchemaCoversAllNamespaces(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, ns := range AllNamespaces {
		if err := s.Set(ctx, ns, "k", []byte("v"), time.Minute, ""); err != nil {
			t.Errorf("namespace %s: %v", ns, err)
		}
		if _, ok, _ := s.Get(ctx, ns, "k"); !ok {
			t.Errorf("namespace %s not usable after open", ns)
		}
	}
}
