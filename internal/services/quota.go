package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/database"
	"github.com/aclaudios/acml-atomzr-urlshortener/pkg/logger"
)

// QuotaScope separates the independent daily counters.
type QuotaScope string

const (
	QuotaLinks QuotaScope = "links" // single-link creation
	QuotaBulk  QuotaScope = "bulk"  // bulk caption creation
)

// Quota caps creation operations per identity per calendar day (UTC).
// Counters live in Redis keyed by (scope, identity, date) and expire at
// the next midnight, so the reset is implicit. When Redis is unreachable
// the quota degrades to a process-local advisory counter rather than
// blocking creation.
type Quota struct {
	mu     sync.Mutex
	date   string
	counts map[string]int

	now func() time.Time
}

func NewQuota() *Quota {
	return &Quota{
		counts: make(map[string]int),
		now:    time.Now,
	}
}

// CheckAndReserve admits one creation for identity under the given scope,
// or returns ErrLimitReached. A denied attempt does not consume quota.
func (q *Quota) CheckAndReserve(ctx context.Context, identity string, scope QuotaScope, limit int) error {
	today := q.today()
	key := quotaKey(scope, identity, today)

	if database.Redis != nil {
		count, err := database.IncrQuota(ctx, key, q.untilMidnight())
		if err == nil {
			if count > int64(limit) {
				if derr := database.DecrQuota(ctx, key, 1); derr != nil {
					logger.Warn().Err(derr).Str("key", key).Msg("failed to roll back denied quota reservation")
				}
				return ErrLimitReached
			}
			return nil
		}
		logger.Warn().Err(err).Msg("quota counter unavailable, using process-local fallback")
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.date != today {
		q.date = today
		q.counts = make(map[string]int)
	}
	if q.counts[key] >= limit {
		return ErrLimitReached
	}
	q.counts[key]++
	return nil
}

// Release hands back n reserved units after a failed creation, so an
// aborted operation does not burn quota.
func (q *Quota) Release(ctx context.Context, identity string, scope QuotaScope, n int) {
	if n <= 0 {
		return
	}
	today := q.today()
	key := quotaKey(scope, identity, today)

	if database.Redis != nil {
		if err := database.DecrQuota(ctx, key, int64(n)); err == nil {
			return
		}
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.date != today {
		return
	}
	if q.counts[key] > n {
		q.counts[key] -= n
	} else {
		delete(q.counts, key)
	}
}

func (q *Quota) today() string {
	return q.now().UTC().Format("2006-01-02")
}

func (q *Quota) untilMidnight() time.Duration {
	now := q.now().UTC()
	midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	return midnight.Sub(now)
}

func quotaKey(scope QuotaScope, identity, date string) string {
	return fmt.Sprintf("quota:%s:%s:%s", scope, identity, date)
}
