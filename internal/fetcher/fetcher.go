package fetcher

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"covidbot/internal/common"
	"covidbot/internal/config"
)

// PageFetcher downloads the source statistics page over an injected HTTP
// session. The session owns the request timeout; one GET is one attempt, and
// retrying is the caller's decision.
type PageFetcher struct {
	client *resty.Client
	cfg    *config.SourceConfig
	logger zerolog.Logger
}

// NewPageFetcher creates a new PageFetcher.
func NewPageFetcher(client *resty.Client, cfg *config.SourceConfig, logger zerolog.Logger) *PageFetcher {
	return &PageFetcher{
		client: client,
		cfg:    cfg,
		logger: logger.With().Str("component", "PageFetcher").Logger(),
	}
}

// FetchPage performs one GET of the configured source URL and returns the raw
// document body.
func (pf *PageFetcher) FetchPage(ctx context.Context) ([]byte, error) {
	resp, err := pf.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", pf.cfg.UserAgent).
		Get(pf.cfg.URL)
	if err != nil {
		pf.logger.Error().Err(err).Str("url", pf.cfg.URL).Msg("Failed to execute HTTP request")
		return nil, common.NewNetworkError(pf.cfg.URL, "HTTP request failed", err)
	}

	if resp.StatusCode() != http.StatusOK {
		pf.logger.Warn().Str("url", pf.cfg.URL).Int("status_code", resp.StatusCode()).Msg("Received non-OK HTTP status")
		// Limit error body to 1KB
		errorBody := resp.Body()
		if len(errorBody) > 1024 {
			errorBody = errorBody[:1024]
		}
		return nil, common.NewHTTPError(resp.StatusCode(), string(errorBody), pf.cfg.URL)
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, common.NewError("source page '%s' returned an empty body", pf.cfg.URL)
	}
	// A truncated document would parse but silently lose table rows, so an
	// oversize body is rejected rather than clipped.
	if pf.cfg.MaxBodyBytes > 0 && len(body) > pf.cfg.MaxBodyBytes {
		return nil, common.NewError("source page '%s' body size %d exceeds limit %d", pf.cfg.URL, len(body), pf.cfg.MaxBodyBytes)
	}

	pf.logger.Debug().
		Str("url", pf.cfg.URL).
		Int("content_size", len(body)).
		Msg("Successfully fetched source page")

	return body, nil
}
