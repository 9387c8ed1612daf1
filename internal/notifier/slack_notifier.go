package notifier

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"covidbot/internal/common"
	"covidbot/internal/config"
	"covidbot/internal/models"
)

// SlackNotifier sends report payloads to a Slack incoming webhook.
type SlackNotifier struct {
	client      *resty.Client
	webhookURL  string
	maxAttempts int
	logger      zerolog.Logger
}

// NewSlackNotifier creates a new SlackNotifier on an injected HTTP session.
// The session's timeout bounds each individual delivery attempt.
func NewSlackNotifier(client *resty.Client, cfg *config.SlackConfig, logger zerolog.Logger) *SlackNotifier {
	return &SlackNotifier{
		client:      client,
		webhookURL:  cfg.WebhookURL,
		maxAttempts: cfg.MaxAttempts,
		logger:      logger.With().Str("component", "SlackNotifier").Logger(),
	}
}

// SendReport posts the payload to the webhook. Only timed-out attempts are
// retried, immediately and without backoff, up to the configured attempt
// budget. A completed request with a non-200 status means the webhook made a
// decision, so it is a hard failure rather than a retry.
func (sn *SlackNotifier) SendReport(ctx context.Context, payload models.SlackMessagePayload) error {
	for attempt := 1; attempt <= sn.maxAttempts; attempt++ {
		resp, err := sn.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(payload).
			Post(sn.webhookURL)

		if err != nil {
			if common.IsTimeout(err) {
				sn.logger.Warn().
					Int("attempt", attempt).
					Int("max_attempts", sn.maxAttempts).
					Msg("Slack delivery attempt timed out, retrying")
				continue
			}
			return common.NewNetworkError(sn.webhookURL, "slack delivery failed", err)
		}

		if resp.StatusCode() != http.StatusOK {
			sn.logger.Error().
				Int("status_code", resp.StatusCode()).
				Str("response_body", resp.String()).
				Msg("Slack webhook rejected report")
			return &DeliveryError{StatusCode: resp.StatusCode(), Body: resp.String()}
		}

		sn.logger.Info().
			Int("attempt", attempt).
			Int("blocks", len(payload.Blocks)).
			Msg("Report delivered to Slack")
		return nil
	}

	return &TimeoutExceededError{Attempts: sn.maxAttempts}
}
