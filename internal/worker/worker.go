package worker

import (
	"context"
	"time"

	"marketplace-service/internal/broker"
	"marketplace-service/internal/models"
	"marketplace-service/internal/redisclient"
	"marketplace-service/internal/store"
	"marketplace-service/internal/util"

	"go.uber.org/zap"
)

// RankingWorker consumes OrderPlaced events and maintains the best-seller
// ranking in Redis.
type RankingWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewRankingWorker creates a new ranking worker
func NewRankingWorker(consumer *broker.Consumer, redis *redisclient.Client) *RankingWorker {
	logger := util.GetLogger()

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderPlaced(func(ctx context.Context, event *models.OrderPlacedEvent) error {
		if err := redis.BumpBestSeller(ctx, event.ProductID, event.Quantity); err != nil {
			logger.Error("Failed to bump best-seller score",
				zap.Int64("product_id", event.ProductID),
				zap.Error(err))
			return err
		}
		return nil
	})

	return &RankingWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
		logger:       logger,
	}
}

// Start starts the worker
func (w *RankingWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting ranking worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *RankingWorker) Stop() error {
	w.logger.Info("Stopping ranking worker")
	return w.consumer.Close()
}

// ViewsFlushWorker periodically drains product view counters from Redis into
// the products table.
type ViewsFlushWorker struct {
	redis    *redisclient.Client
	store    *store.Store
	interval time.Duration
	logger   *zap.Logger
}

// NewViewsFlushWorker creates a new views flush worker
func NewViewsFlushWorker(redis *redisclient.Client, store *store.Store, interval time.Duration) *ViewsFlushWorker {
	return &ViewsFlushWorker{
		redis:    redis,
		store:    store,
		interval: interval,
		logger:   util.GetLogger(),
	}
}

// Start runs the flush loop until the context is cancelled
func (w *ViewsFlushWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting views flush worker",
		zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.flush(context.Background())
			return ctx.Err()
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *ViewsFlushWorker) flush(ctx context.Context) {
	views, err := w.redis.DrainProductViews(ctx)
	if err != nil {
		w.logger.Error("Failed to drain view counters", zap.Error(err))
	}

	for productID, count := range views {
		if err := w.store.AddProductViews(ctx, productID, count); err != nil {
			w.logger.Error("Failed to flush product views",
				zap.Int64("product_id", productID),
				zap.Int64("views", count),
				zap.Error(err))
			continue
		}
		util.ViewsFlushedTotal.Add(float64(count))
	}
}
