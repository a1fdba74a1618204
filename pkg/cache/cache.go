// Package cache is a namespaced, TTL-based cache for geocoding, photo,
// trip-snapshot, and generic API results. Entries are replaced wholesale
// and expire lazily on read.
package cache

import (
	"context"
	"time"
)

type Namespace string

const (
	NamespaceGeocode  Namespace = "geocode"
	NamespacePhoto    Namespace = "photo"
	NamespaceSnapshot Namespace = "snapshot"
	NamespaceAPI      Namespace = "api"
)

// SchemaVersion is bumped when a namespace is added. Opening a store that
// last saw an older version triggers additive-only creation of the new
// namespaces; nothing is ever dropped on upgrade.
const SchemaVersion = 2

// AllNamespaces lists every namespace of the current schema version.
var AllNamespaces = []Namespace{NamespaceGeocode, NamespacePhoto, NamespaceSnapshot, NamespaceAPI}

// Entry is immutable once written; updates replace it wholesale.
type Entry struct {
	Key          string    `json:"key"`
	Value        []byte    `json:"value"`
	Timestamp    time.Time `json:"timestamp"`
	ExpiresAt    time.Time `json:"expiresAt"`
	SecondaryKey string    `json:"secondaryKey,omitempty"`
}

func (e Entry) expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

type Store interface {
	// Get returns the cached value, or absent. An expired entry is
	// deleted on read and reported absent.
	Get(ctx context.Context, ns Namespace, key string) ([]byte, bool, error)

	// Set stores value under key for ttl. secondaryKey optionally indexes
	// the entry for bulk invalidation (owner id for snapshots, endpoint
	// for API responses); pass "" for none.
	Set(ctx context.Context, ns Namespace, key string, value []byte, ttl time.Duration, secondaryKey string) error

	Clear(ctx context.Context, ns Namespace) error

	// InvalidateBy removes every entry in ns whose secondary key matches,
	// returning how many were dropped.
	InvalidateBy(ctx context.Context, ns Namespace, secondaryKey string) (int, error)

	// Sweep reclaims space held by expired entries. Correctness never
	// depends on it; expiry is lazy on read.
	Sweep(ctx context.Context) (int, error)
}
