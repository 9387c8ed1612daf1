package monitor

import (
	"context"

	"covidbot/internal/models"
)

// PageSource supplies the raw source document for a cycle.
type PageSource interface {
	FetchPage(ctx context.Context) ([]byte, error)
}

// ReportBuilder projects extracted statistics into a deliverable payload.
type ReportBuilder interface {
	BuildReport(stats models.CountryStats, marker string) (models.SlackMessagePayload, error)
}

// ReportSender delivers a built report payload.
type ReportSender interface {
	SendReport(ctx context.Context, payload models.SlackMessagePayload) error
}
