// Package cache implements the coherence layer in front of the catalog and
// order stores: read-through on miss, write-through after a successful save,
// entries keyed by the result's identity.
package cache

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store is the backing key-value cache. Both backends expose the same
// Get/Put/Evict semantics; only TTL enforcement differs.
type Store interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte, ttl time.Duration)
	Evict(key string)
}

// TTLPolicy assigns a lifetime per aggregate type: long for rarely-changing
// aggregates, short for frequently-changing ones.
type TTLPolicy struct {
	Category time.Duration
	Product  time.Duration
	Order    time.Duration
}

func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		Category: 24 * time.Hour,
		Product:  time.Hour,
		Order:    30 * time.Minute,
	}
}

func productIDKey(id int64) string {
	return fmt.Sprintf("products:id:%d", id)
}

func productUUIDKey(id uuid.UUID) string {
	return "products:uuid:" + id.String()
}

func orderKey(id uuid.UUID) string {
	return "orders:id:" + id.String()
}

func categoryKey(id uuid.UUID) string {
	return "categories:id:" + id.String()
}
