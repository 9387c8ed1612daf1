package logger

import (
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"covidbot/internal/common"
	"covidbot/internal/config"
)

// New creates the application logger. Output always goes to stderr in the
// configured format; when a log file is set, a rotating copy is written there
// as well.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Logger{}, err
	}

	writers := []io.Writer{newWriter(cfg.LogFormat, os.Stderr, false)}

	if cfg.LogFile != "" {
		fileWriter, err := newFileWriter(cfg)
		if err != nil {
			return zerolog.Logger{}, err
		}
		writers = append(writers, fileWriter)
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	logger := zerolog.New(multiWriter).
		Level(level).
		With().
		Timestamp().
		Logger()

	// Route the standard log package through zerolog so library output is
	// captured too.
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)

	return logger, nil
}

// newFileWriter creates a size-rotated file writer in the configured format.
func newFileWriter(cfg config.LogConfig) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, common.WrapError(err, "failed to create log directory")
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.MaxLogSizeMB,
		MaxBackups: cfg.MaxLogBackups,
		LocalTime:  true,
	}

	return newWriter(cfg.LogFormat, rotated, true), nil
}

// newWriter wraps out according to the configured format.
func newWriter(format string, out io.Writer, noColor bool) io.Writer {
	if strings.ToLower(format) == "json" {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
}

// parseLevel parses string log level to zerolog.Level.
func parseLevel(levelStr string) (zerolog.Level, error) {
	if levelStr == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return zerolog.InfoLevel, common.WrapError(err, "invalid log level")
	}
	return level, nil
}
