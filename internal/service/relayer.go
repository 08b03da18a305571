package service

import (
	"context"
	"log"
	"time"

	"communehub/internal/model"
)

// OutboxStore is what the relayer needs from the engagement outbox table.
type OutboxStore interface {
	ListPending(ctx context.Context, batchSize int) ([]model.EngagementOutbox, error)
	MarkFailed(ctx context.Context, id uint64) error
	MarkSent(ctx context.Context, id uint64) error
}

// Sender delivers one outbox row downstream.
type Sender func(ctx context.Context, ob *model.EngagementOutbox) error

// OutboxRelayer drains pending engagement events to kafka on a ticker.
// Delivery is at-least-once; consumers dedupe on the outbox row ID.
type OutboxRelayer struct {
	repo      OutboxStore
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(repo OutboxStore, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      repo,
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err := r.sender(ctx, &ob); err != nil {
			_ = r.repo.MarkFailed(ctx, ob.ID)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}

// LogSender is the fallback sender when no kafka brokers are configured.
func LogSender(ctx context.Context, ob *model.EngagementOutbox) error {
	log.Printf("OUTBOX SEND type=%s user=%d post=%d payload=%s", ob.EventType, ob.UserID, ob.PostID, ob.Payload)
	return nil
}
