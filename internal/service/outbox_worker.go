package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/iyhunko/inventory-tracker/internal/model"
	"github.com/iyhunko/inventory-tracker/internal/sqs"
)

const outboxBatchSize = 100

// OutboxEventRepository is the persistence surface the outbox worker needs.
type OutboxEventRepository interface {
	ListPending(ctx context.Context, limit int) ([]*model.Event, error)
	UpdateStatus(ctx context.Context, eventID uuid.UUID, status model.EventStatus) error
}

// OutboxWorker polls the events table and publishes pending events to SQS.
type OutboxWorker struct {
	eventRepo OutboxEventRepository
	publisher Publisher
	interval  time.Duration
}

// NewOutboxWorker creates a new OutboxWorker.
func NewOutboxWorker(eventRepo OutboxEventRepository, publisher Publisher, interval time.Duration) *OutboxWorker {
	return &OutboxWorker{
		eventRepo: eventRepo,
		publisher: publisher,
		interval:  interval,
	}
}

// Start begins the worker loop that processes pending events.
func (w *OutboxWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.Info("Outbox worker started", slog.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker stopping")
			return
		case <-ticker.C:
			w.processEvents(ctx)
		}
	}
}

// processEvents retrieves and processes pending events.
func (w *OutboxWorker) processEvents(ctx context.Context) {
	events, err := w.eventRepo.ListPending(ctx, outboxBatchSize)
	if err != nil {
		slog.Error("Failed to retrieve pending events", slog.Any("err", err))
		return
	}

	if len(events) == 0 {
		return
	}

	slog.Info("Processing pending events", slog.Int("count", len(events)))

	for _, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			slog.Error("Failed to process event",
				slog.String("event_id", event.ID.String()),
				slog.String("event_type", event.EventType),
				slog.Any("err", err))

			if updateErr := w.eventRepo.UpdateStatus(ctx, event.ID, model.EventStatusFailed); updateErr != nil {
				slog.Error("Failed to update event status to failed",
					slog.String("event_id", event.ID.String()),
					slog.Any("err", updateErr))
			}
			continue
		}

		if updateErr := w.eventRepo.UpdateStatus(ctx, event.ID, model.EventStatusProcessed); updateErr != nil {
			slog.Error("Failed to update event status to processed",
				slog.String("event_id", event.ID.String()),
				slog.Any("err", updateErr))
		}
	}
}

// processEvent publishes a single event to SQS.
func (w *OutboxWorker) processEvent(ctx context.Context, event *model.Event) error {
	var msg sqs.StockMessage
	if err := json.Unmarshal(event.EventData, &msg); err != nil {
		return err
	}

	return w.publisher.PublishStockMessage(ctx, msg)
}
