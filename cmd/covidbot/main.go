package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"covidbot/internal/config"
	"covidbot/internal/detector"
	"covidbot/internal/extractor"
	"covidbot/internal/fetcher"
	"covidbot/internal/logger"
	"covidbot/internal/monitor"
	"covidbot/internal/notifier"
	"covidbot/internal/scheduler"

	"github.com/go-resty/resty/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

func main() {
	fmt.Println("covidbot starting...")

	// Flags
	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := flag.String("c", "", "Alias for --config")

	runOnce := flag.Bool("once", false, "Run a single poll cycle and exit instead of scheduling daily runs.")
	flag.Parse()

	// Consolidate alias flags
	if *configFile == "" && *configFileAlias != "" {
		*configFile = *configFileAlias
	}

	// Load global configuration (path determined by the --config flag)
	log.Println("[INFO] Main: Attempting to load global configuration...")
	bootstrapLogger := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	gCfg, err := config.LoadGlobalConfig(*configFile, bootstrapLogger)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load global config using path '%s': %v", *configFile, err)
	}
	if gCfg == nil {
		log.Fatalf("[FATAL] Main: Loaded configuration is nil, though no error was reported. This should not happen.")
	}
	log.Println("[INFO] Main: Global configuration loaded successfully.")

	// Initialize zerolog logger
	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}
	zLogger.Info().Msg("Logger initialized successfully.")

	// Validate the loaded configuration
	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}
	zLogger.Info().Msg("Configuration validated successfully.")

	if len(gCfg.WatchConfig.Countries) == 0 {
		zLogger.Warn().Msg("No watched countries configured; reports will carry the summary line only.")
	}

	locale := gCfg.ReportConfig.Locale
	if locale == "" {
		locale = config.DefaultReportLocale
	}
	localeTag := language.Make(locale)

	// Dedicated clients so a slow source page cannot eat into the Slack
	// delivery budget.
	sourceClient := resty.New().SetTimeout(time.Duration(gCfg.SourceConfig.TimeoutSecs) * time.Second)
	slackClient := resty.New().SetTimeout(time.Duration(gCfg.SlackConfig.TimeoutSecs) * time.Second)

	pageFetcher := fetcher.NewPageFetcher(sourceClient, &gCfg.SourceConfig, zLogger)
	markerDetector := detector.NewMarkerDetector(&gCfg.SourceConfig, zLogger)
	tableExtractor := extractor.NewTableExtractor(&gCfg.SourceConfig, extractor.LocaleFor(localeTag), zLogger)
	payloadBuilder := notifier.NewPayloadBuilder(gCfg.WatchConfig.Countries, gCfg.SlackConfig.Channel, localeTag)
	slackNotifier := notifier.NewSlackNotifier(slackClient, &gCfg.SlackConfig, zLogger)

	monitoringService := monitor.NewMonitoringService(
		pageFetcher,
		markerDetector,
		tableExtractor,
		payloadBuilder,
		slackNotifier,
		zLogger,
	)

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		zLogger.Info().Str("signal", sig.String()).Msg("Received interrupt signal, initiating graceful shutdown...")
		cancel()
	}()

	if *runOnce {
		zLogger.Info().Msg("Running in one-shot mode.")
		if err := monitoringService.RunCycle(ctx); err != nil {
			zLogger.Error().Err(err).Msg("Poll cycle failed")
			os.Exit(1)
		}
		zLogger.Info().Msg("Poll cycle finished.")
		return
	}

	schedulerInstance, err := scheduler.NewScheduler(&gCfg.ScheduleConfig, monitoringService, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not initialize scheduler")
	}

	zLogger.Info().
		Str("refresh_at", gCfg.ScheduleConfig.RefreshAt).
		Str("timezone", gCfg.ScheduleConfig.Timezone).
		Msg("Starting daily polling loop.")

	if err := schedulerInstance.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			zLogger.Info().Msg("Shutdown complete.")
			return
		}
		zLogger.Error().Err(err).Msg("Polling loop terminated with error")
		os.Exit(1)
	}
}
