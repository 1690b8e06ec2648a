package ratelimiter

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	ratelimiter "blogify/internal/core/domain/rate_limiter"
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	idleTTL  time.Duration
}

// Local is an in-process token bucket limiter used when Redis is not
// configured. Limits are not shared between instances.
type Local struct {
	log     logging.Logger
	now     func() time.Time
	lock    sync.Mutex
	buckets map[string]*bucket
}

func NewLocal(log logging.Logger, now func() time.Time) *Local {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Local{log: log, now: now, buckets: make(map[string]*bucket)}
}

func (l *Local) CheckLimit(ctx context.Context, key string, limit ratelimiter.Limit) ratelimiter.Result {
	if limit.Value == 0 {
		return ratelimiter.NotAllowed()
	}
	now := l.now()
	if !l.get(key, limit, now).AllowN(now, 1) {
		l.log.Info(ctx, "Rate limit exceeded.", logging.Entry("key", key))
		return ratelimiter.NotAllowed()
	}
	return ratelimiter.Allowed()
}

func (l *Local) get(key string, limit ratelimiter.Limit, now time.Time) *rate.Limiter {
	d := limit.Interval.Duration()
	k := fmt.Sprintf("%s::%d::%s", key, limit.Value, d)

	l.lock.Lock()
	defer l.lock.Unlock()
	if b, ok := l.buckets[k]; ok {
		b.lastSeen = now
		return b.limiter
	}
	b := &bucket{
		limiter:  rate.NewLimiter(rate.Every(d/time.Duration(limit.Value)), int(limit.Value)),
		lastSeen: now,
		idleTTL:  d,
	}
	l.buckets[k] = b
	return b.limiter
}

// Prune drops buckets that have been idle long enough to be full again.
func (l *Local) Prune() int {
	now := l.now()
	l.lock.Lock()
	defer l.lock.Unlock()
	pruned := 0
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > b.idleTTL {
			delete(l.buckets, k)
			pruned++
		}
	}
	return pruned
}

// RunPruning calls Prune every interval until ctx is done.
func (l *Local) RunPruning(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Prune(); n > 0 {
				l.log.Debug(ctx, "Pruned idle rate limiter buckets.", logging.Entry("count", n))
			}
		}
	}
}
