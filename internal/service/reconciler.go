package service

import (
	"context"
	"log"
	"time"
)

// CounterReconciler periodically recounts engagement event rows into the
// denormalized post counters. Counters are at-least-once approximations in
// between runs; this is the true-up.
type CounterReconciler struct {
	engagement EngagementStore
	cache      CounterCache
	batchSize  int
	interval   time.Duration
	lookback   time.Duration
}

func NewCounterReconciler(engagement EngagementStore, cache CounterCache) *CounterReconciler {
	return &CounterReconciler{
		engagement: engagement,
		cache:      cache,
		batchSize:  500,
		interval:   5 * time.Minute,
		lookback:   10 * time.Minute,
	}
}

func (r *CounterReconciler) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.reconcileOnce(ctx)
		}
	}
}

func (r *CounterReconciler) reconcileOnce(ctx context.Context) {
	ids, err := r.engagement.RecentPostIDs(ctx, time.Now().Add(-r.lookback), r.batchSize)
	if err != nil {
		log.Printf("reconcile list err: %v", err)
		return
	}
	for _, id := range ids {
		if err := r.engagement.Recount(ctx, id); err != nil {
			log.Printf("recount post %d err: %v", id, err)
			continue
		}
		if r.cache != nil {
			_ = r.cache.Delete(ctx, id)
		}
	}
}
