package workers

import (
	"context"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/models"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/services"
	"github.com/aclaudios/acml-atomzr-urlshortener/pkg/logger"
)

// StartClickWorkers launches the pool that drains click events off the
// redirect path. Each event bumps the link's counter and persists a visit
// row; failures are logged and swallowed, never surfaced to the visitor.
func StartClickWorkers(workerCount, bufferSize int, store *services.Store) chan models.ClickEvent {
	events := make(chan models.ClickEvent, bufferSize)
	logger.Info().Int("workers", workerCount).Int("buffer", bufferSize).Msg("starting click workers")
	for i := 0; i < workerCount; i++ {
		go clickWorker(i, events, store)
	}
	return events
}

func clickWorker(id int, events <-chan models.ClickEvent, store *services.Store) {
	for event := range events {
		if err := store.ApplyClick(context.Background(), event); err != nil {
			logger.Error().
				Err(err).
				Int("worker", id).
				Str("link_id", event.LinkID).
				Msg("failed to record click")
		}
	}
}
