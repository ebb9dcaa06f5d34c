// Package delivery wires the outbound channels into the notifiers the
// rating pipeline depends on.
package delivery

import (
	"context"
	"time"

	"vidya_assessment/internal/delivery/channels"
	"vidya_assessment/internal/logger"
)

// OpsAlerter raises operational alerts that need human attention.
type OpsAlerter interface {
	Alert(ctx context.Context, title string, fields map[string]string)
}

// WebhookAlerter posts alerts to the configured ops webhook. Delivery is
// best effort: failures are logged, never returned, so an unreachable
// alert channel cannot break the pipeline it reports on.
type WebhookAlerter struct {
	url string
}

// NewWebhookAlerter creates an alerter for url. An empty url disables
// alerting (alerts are only logged).
func NewWebhookAlerter(url string) *WebhookAlerter {
	return &WebhookAlerter{url: url}
}

// Alert sends one alert.
func (a *WebhookAlerter) Alert(ctx context.Context, title string, fields map[string]string) {
	log := logger.GetDeliveryLogger()

	logFields := map[string]interface{}{"title": title}
	for k, v := range fields {
		logFields[k] = v
	}
	log.WithFields(logFields).Warn("Ops alert raised")

	if a.url == "" {
		return
	}

	payload := map[string]interface{}{
		"title":     title,
		"fields":    fields,
		"timestamp": time.Now().Unix(),
	}

	if err := channels.SendWebhook(ctx, a.url, payload); err != nil {
		log.WithError(err).WithField("title", title).Error("Failed to deliver ops alert")
	}
}
