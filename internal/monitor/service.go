package monitor

import (
	"bytes"
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"covidbot/internal/common"
	"covidbot/internal/detector"
	"covidbot/internal/extractor"
)

// MonitoringService orchestrates one poll cycle: fetch the source page,
// check its freshness marker, and when the marker is new, extract the
// statistics table and deliver a report.
type MonitoringService struct {
	source    PageSource
	detector  *detector.MarkerDetector
	extractor *extractor.TableExtractor
	builder   ReportBuilder
	sender    ReportSender
	logger    zerolog.Logger
}

// NewMonitoringService creates a new instance of MonitoringService.
func NewMonitoringService(
	source PageSource,
	markerDetector *detector.MarkerDetector,
	tableExtractor *extractor.TableExtractor,
	builder ReportBuilder,
	sender ReportSender,
	baseLogger zerolog.Logger,
) *MonitoringService {
	return &MonitoringService{
		source:    source,
		detector:  markerDetector,
		extractor: tableExtractor,
		builder:   builder,
		sender:    sender,
		logger:    baseLogger.With().Str("component", "MonitoringService").Logger(),
	}
}

// RunCycle executes one full poll cycle. It returns nil both when a report
// was delivered and when the source had no new content. The marker is
// committed before extraction starts, so a cycle that fails past that point
// does not repeat for the same marker; the next successful cycle simply sees
// it as already known.
func (ms *MonitoringService) RunCycle(ctx context.Context) error {
	body, err := ms.source.FetchPage(ctx)
	if err != nil {
		return err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return common.WrapError(err, "failed to parse source document")
	}

	marker, err := ms.detector.ExtractMarker(doc)
	if err != nil {
		return err
	}

	if !ms.detector.Commit(marker) {
		ms.logger.Info().Str("marker", marker).Msg("Source unchanged since last cycle")
		return nil
	}
	ms.logger.Info().Str("marker", marker).Msg("New source content detected")

	stats, err := ms.extractor.Extract(doc)
	if err != nil {
		return err
	}

	payload, err := ms.builder.BuildReport(stats, marker)
	if err != nil {
		return err
	}

	return ms.sender.SendReport(ctx, payload)
}
