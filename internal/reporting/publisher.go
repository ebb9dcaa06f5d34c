// Package reporting pushes completed submissions to the downstream
// reporting pipeline.
package reporting

import (
	"context"
	"time"

	submissionmodels "vidya_assessment/internal/api/submission/models"
	"vidya_assessment/internal/delivery/channels"
	"vidya_assessment/internal/logger"
)

// EventSubmissionCompleted tags a completed submission push.
const EventSubmissionCompleted = "observation_submission.completed"

// Publisher pushes rated submissions for reporting.
type Publisher interface {
	PushCompletedSubmission(ctx context.Context, submission submissionmodels.ObservationSubmission) error
}

// WebhookPublisher delivers reporting events to a webhook endpoint.
type WebhookPublisher struct {
	url string
}

// NewWebhookPublisher creates a publisher for url.
func NewWebhookPublisher(url string) *WebhookPublisher {
	return &WebhookPublisher{url: url}
}

// PushCompletedSubmission pushes one completed submission.
func (p *WebhookPublisher) PushCompletedSubmission(ctx context.Context, submission submissionmodels.ObservationSubmission) error {
	log := logger.GetDeliveryLogger()

	payload := map[string]interface{}{
		"event":      EventSubmissionCompleted,
		"submission": submission,
		"timestamp":  time.Now().Unix(),
	}

	if err := channels.SendWebhook(ctx, p.url, payload); err != nil {
		log.WithError(err).WithField("submissionId", submission.ID.Hex()).Error("Failed to push completed submission for reporting")
		return err
	}

	log.WithField("submissionId", submission.ID.Hex()).Info("Pushed completed submission for reporting")
	return nil
}
