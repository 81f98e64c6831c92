package repository

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/iliyamo/weight-tracker/internal/model"
	"github.com/iliyamo/weight-tracker/internal/parse"
	"github.com/iliyamo/weight-tracker/internal/sheet"
)

// Table names inside the spreadsheet.
const (
	usersTable   = "users"
	weightsTable = "weights"
)

// Cache keeps short-TTL projections of the two parsed tables so that
// page loads do not hammer the spreadsheet API. The projections
// refresh independently (measurements change more often than
// accounts), but every successful write invalidates both: the next
// read refetches, so a user always sees their own write at the cost
// of one extra round-trip. The cache holds derived state only and can
// be rebuilt from the gateway at any time.
type Cache struct {
	store      sheet.Store
	usersTTL   time.Duration
	weightsTTL time.Duration

	mu        sync.Mutex
	users     []model.UserAccount
	usersAt   time.Time
	weights   []model.WeightEntry
	weightsAt time.Time
}

// NewCache wraps a store with per-table TTLs.
func NewCache(store sheet.Store, usersTTL, weightsTTL time.Duration) *Cache {
	return &Cache{store: store, usersTTL: usersTTL, weightsTTL: weightsTTL}
}

// Users returns the cached user projection, refetching after its TTL
// or an invalidation. Failed refreshes leave the previous data
// untouched and return the error.
func (c *Cache) Users(ctx context.Context) ([]model.UserAccount, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.usersAt.IsZero() && time.Since(c.usersAt) < c.usersTTL {
		return c.users, nil
	}
	t, err := c.store.ReadAll(ctx, usersTable)
	if err != nil {
		return nil, err
	}
	c.users = parse.Users(t)
	c.usersAt = time.Now()
	return c.users, nil
}

// Weights returns the cached weight projection, date-ascending.
func (c *Cache) Weights(ctx context.Context) ([]model.WeightEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.weightsAt.IsZero() && time.Since(c.weightsAt) < c.weightsTTL {
		return c.weights, nil
	}
	t, err := c.store.ReadAll(ctx, weightsTable)
	if err != nil {
		return nil, err
	}
	entries, skipped := parse.Weights(t)
	if skipped > 0 {
		// Lenient-ingestion policy: malformed rows are dropped, only logged.
		log.Printf("weights: skipped %d malformed row(s)", skipped)
	}
	c.weights = entries
	c.weightsAt = time.Now()
	return c.weights, nil
}

// Invalidate marks both projections stale. Zeroing the fetch
// timestamps under the lock is all the coordination needed: the worst
// outcome of a race is one redundant refetch, never stale data after
// a write.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.usersAt = time.Time{}
	c.weightsAt = time.Time{}
	c.mu.Unlock()
}
