// Package worker runs the background consumers: the rating queue worker.
package worker

import (
	"context"
	"time"

	submissionhdl "vidya_assessment/internal/api/submission/handler"
	submissionsvc "vidya_assessment/internal/api/submission/service"
	"vidya_assessment/internal/logger"
)

// RatingQueueWorker drains the submission rating queue: every interval it
// reads a batch of unprocessed entries, rates each submission serially and
// marks the entry processed. A failed rating is recorded on the entry and
// retried on a later poll.
type RatingQueueWorker struct {
	queueService  *submissionsvc.RatingQueueService
	ratingService *submissionsvc.RatingService

	interval  time.Duration
	batchSize int
}

// NewRatingQueueWorker creates the worker with its services wired from the
// registered collections and server configuration.
func NewRatingQueueWorker(interval time.Duration, batchSize int) (*RatingQueueWorker, error) {
	queueService, err := submissionsvc.NewRatingQueueService()
	if err != nil {
		return nil, err
	}

	submissionService, err := submissionsvc.NewObservationSubmissionService()
	if err != nil {
		return nil, err
	}

	ratingService, err := submissionhdl.NewRatingServiceFromConfig(submissionService)
	if err != nil {
		return nil, err
	}

	if interval < time.Second {
		interval = time.Minute
	}
	if batchSize <= 0 {
		batchSize = 20
	}

	return &RatingQueueWorker{
		queueService:  queueService,
		ratingService: ratingService,
		interval:      interval,
		batchSize:     batchSize,
	}, nil
}

// Start runs the worker loop until ctx is cancelled. Each tick is guarded
// against panics so one bad batch cannot kill the loop.
func (w *RatingQueueWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval":  w.interval.String(),
		"batchSize": w.batchSize,
	}).Info("[RATING_QUEUE] Starting rating queue worker")

	for {
		select {
		case <-ctx.Done():
			log.Info("[RATING_QUEUE] Rating queue worker stopped")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

func (w *RatingQueueWorker) processBatch(ctx context.Context) {
	log := logger.GetAppLogger()

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("[RATING_QUEUE] Panic while processing batch, continuing on next tick")
		}
	}()

	entries, err := w.queueService.NextBatch(ctx, w.batchSize)
	if err != nil {
		log.WithError(err).Error("[RATING_QUEUE] Failed to read queue batch")
		return
	}
	if len(entries) == 0 {
		return
	}

	processed := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}

		if _, err := w.ratingService.RateByID(ctx, entry.SubmissionID); err != nil {
			log.WithError(err).WithField("submissionId", entry.SubmissionID.Hex()).
				Warn("[RATING_QUEUE] Rating failed, entry stays queued")
			if recordErr := w.queueService.RecordFailure(ctx, entry.ID, err); recordErr != nil {
				log.WithError(recordErr).WithField("entryId", entry.ID.Hex()).
					Error("[RATING_QUEUE] Failed to record rating failure")
			}
			continue
		}

		if err := w.queueService.MarkProcessed(ctx, entry.ID); err != nil {
			log.WithError(err).WithField("entryId", entry.ID.Hex()).
				Error("[RATING_QUEUE] Failed to mark entry processed")
			continue
		}
		processed++
	}

	log.WithFields(map[string]interface{}{
		"batch":     len(entries),
		"processed": processed,
	}).Info("[RATING_QUEUE] Batch processed")
}
