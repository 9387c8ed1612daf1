package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"covidbot/internal/common"
	"covidbot/internal/config"
)

// CycleRunner executes one poll cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context) error
}

// TimeOfDay is a wall-clock refresh time.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay parses an "HH:MM:SS" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return TimeOfDay{}, common.WrapError(err, "invalid daily refresh time")
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

// NextWake computes the first instant strictly after now at which the wall
// clock reads refresh. The comparison is against the actual instant rather
// than a fixed interval, so a cycle that overruns the refresh time still gets
// a future wake instead of an immediate re-run.
func NextWake(now time.Time, refresh TimeOfDay) time.Time {
	target := time.Date(now.Year(), now.Month(), now.Day(),
		refresh.Hour, refresh.Minute, refresh.Second, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}

// Scheduler drives one poll cycle per day at a configured wall-clock time.
// Cycles never overlap and are never cancelled mid-run; cancellation is only
// observed while sleeping between cycles.
type Scheduler struct {
	refresh  TimeOfDay
	location *time.Location
	runner   CycleRunner
	logger   zerolog.Logger
}

// NewScheduler creates a new Scheduler instance.
func NewScheduler(cfg *config.ScheduleConfig, runner CycleRunner, logger zerolog.Logger) (*Scheduler, error) {
	refresh, err := ParseTimeOfDay(cfg.RefreshAt)
	if err != nil {
		return nil, err
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, common.WrapError(err, "invalid schedule timezone")
	}

	return &Scheduler{
		refresh:  refresh,
		location: location,
		runner:   runner,
		logger:   logger.With().Str("component", "Scheduler").Logger(),
	}, nil
}

// Run executes one cycle immediately, then alternates between sleeping until
// the next refresh instant and running a cycle. A cycle error ends the loop
// and is returned; context cancellation during a sleep returns ctx.Err().
// Cycles run on a detached context: an in-flight cycle always completes, and
// cancellation takes effect at the next sleep.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info().Msg("Running initial poll cycle")
	if err := s.runner.RunCycle(context.WithoutCancel(ctx)); err != nil {
		return err
	}

	for {
		wake := NextWake(time.Now().In(s.location), s.refresh)
		sleep := time.Until(wake)
		s.logger.Info().Time("next_wake", wake).Dur("sleep", sleep).Msg("Sleeping until next refresh")

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info().Msg("Context cancelled, exiting scheduling loop")
			return ctx.Err()
		case <-timer.C:
		}

		s.logger.Info().Msg("Starting scheduled poll cycle")
		if err := s.runner.RunCycle(context.WithoutCancel(ctx)); err != nil {
			return err
		}
	}
}
