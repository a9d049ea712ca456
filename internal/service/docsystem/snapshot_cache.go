package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	models "fitconsole/internal/domain/models/docsystem"
	docsysRepo "fitconsole/internal/domain/repositories/docsystem"

	"golang.org/x/sync/singleflight"
)

// SnapshotCache keeps the latest snapshot per company.
//
// Concurrent fetches for the same company share one backend request.
// Invalidate bumps a per-company generation; a fetch that started before the
// bump still answers its callers but is never stored, so a mutation is always
// followed by a fresh fetch. Cached snapshots are shared and must not be modified.
type SnapshotCache struct {
	repo   docsysRepo.SnapshotRepository
	ttl    time.Duration // 0 = entries live until invalidated
	now    func() time.Time
	logger *slog.Logger

	group singleflight.Group

	mu          sync.Mutex
	entries     map[string]cachedSnapshot
	generations map[string]uint64
}

type cachedSnapshot struct {
	snap     *models.Snapshot
	storedAt time.Time
}

// NewSnapshotCache creates a cache in front of repo.
func NewSnapshotCache(repo docsysRepo.SnapshotRepository, ttl time.Duration, logger *slog.Logger) *SnapshotCache {
	return &SnapshotCache{
		repo:        repo,
		ttl:         ttl,
		now:         time.Now,
		logger:      logger,
		entries:     make(map[string]cachedSnapshot),
		generations: make(map[string]uint64),
	}
}

// Get returns the cached snapshot for companyID or fetches a new one.
func (c *SnapshotCache) Get(ctx context.Context, companyID string) (*models.Snapshot, error) {
	c.mu.Lock()
	if e, ok := c.entries[companyID]; ok && c.fresh(e) {
		c.mu.Unlock()
		return e.snap, nil
	}
	gen := c.generations[companyID]
	c.mu.Unlock()

	key := fmt.Sprintf("%s#%d", companyID, gen)
	v, err, shared := c.group.Do(key, func() (any, error) {
		// Shared by every caller waiting on key; one caller leaving must not fail the rest.
		snap, err := c.repo.GetSnapshot(context.WithoutCancel(ctx), companyID)
		if err != nil {
			return nil, err
		}
		if snap.FetchedAt.IsZero() {
			snap.FetchedAt = c.now()
		}
		c.store(companyID, gen, snap)
		return snap, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	if shared {
		c.logger.Debug("snapshot fetch shared", "company_id", companyID)
	}
	return v.(*models.Snapshot), nil
}

// Peek returns the company's cached snapshot without fetching.
func (c *SnapshotCache) Peek(companyID string) (*models.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[companyID]
	if !ok || !c.fresh(e) {
		return nil, false
	}
	return e.snap, true
}

// Invalidate discards the company's snapshot and any fetch already in flight.
func (c *SnapshotCache) Invalidate(companyID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[companyID]++
	delete(c.entries, companyID)
	c.logger.Debug("snapshot invalidated", "company_id", companyID, "generation", c.generations[companyID])
}

func (c *SnapshotCache) store(companyID string, gen uint64, snap *models.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[companyID] != gen {
		c.logger.Debug("discarding stale snapshot", "company_id", companyID, "generation", gen)
		return
	}
	c.entries[companyID] = cachedSnapshot{snap: snap, storedAt: c.now()}
}

func (c *SnapshotCache) fresh(e cachedSnapshot) bool {
	return c.ttl <= 0 || c.now().Sub(e.storedAt) < c.ttl
}
