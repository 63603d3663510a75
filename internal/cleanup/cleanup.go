// Package cleanup carries asset-cleanup jobs triggered by story deletion.
// Cleanup is a best-effort side effect: enqueueing never blocks the caller's
// response and failures are logged, not propagated.
package cleanup

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/travelbuddy/journal-api/internal/infrastructure/assetstore"
	"github.com/travelbuddy/journal-api/pkg/helpers"
)

// Job is the JSON payload put on the RabbitMQ queue for deleting an asset.
type Job struct {
	ImageURL string `json:"imageUrl"`
}

// Enqueuer schedules deletion of the asset behind imageURL.
type Enqueuer interface {
	Enqueue(ctx context.Context, imageURL string)
}

// QueueEnqueuer publishes jobs to RabbitMQ for the cleanup worker.
type QueueEnqueuer struct {
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewQueueEnqueuer(pub *helpers.RabbitPublisher, logger *logrus.Logger) *QueueEnqueuer {
	return &QueueEnqueuer{Pub: pub, Logger: logger}
}

func (q *QueueEnqueuer) Enqueue(ctx context.Context, imageURL string) {
	if imageURL == "" {
		return
	}
	if err := q.Pub.PublishJSON(ctx, Job{ImageURL: imageURL}); err != nil {
		q.Logger.WithError(err).WithField("image_url", imageURL).Warn("asset cleanup publish failed")
	}
}

// InlineEnqueuer deletes the asset directly in a background goroutine. Used
// when RabbitMQ is not configured.
type InlineEnqueuer struct {
	Store  assetstore.Store
	Logger *logrus.Logger
}

func NewInlineEnqueuer(store assetstore.Store, logger *logrus.Logger) *InlineEnqueuer {
	return &InlineEnqueuer{Store: store, Logger: logger}
}

func (q *InlineEnqueuer) Enqueue(ctx context.Context, imageURL string) {
	if imageURL == "" {
		return
	}
	// Detached from the request context so a finished request cannot cancel
	// the delete.
	go func() {
		dctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := q.Store.Delete(dctx, imageURL); err != nil {
			if errors.Is(err, assetstore.ErrNotFound) {
				q.Logger.WithField("image_url", imageURL).Debug("asset already gone")
				return
			}
			q.Logger.WithError(err).WithField("image_url", imageURL).Warn("asset cleanup failed")
		}
	}()
}

var (
	_ Enqueuer = (*QueueEnqueuer)(nil)
	_ Enqueuer = (*InlineEnqueuer)(nil)
)
