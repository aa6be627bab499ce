// Package scheduler is the workflow-scheduler collaborator: it owns the
// calendar trigger, the retry count/delay and the failure notification.
// The pipeline core stays retry-free; this layer re-runs a failed run up
// to the configured attempts after the configured delay.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"fakestore-etl/internal/config"
	"fakestore-etl/internal/etl"
	"fakestore-etl/internal/logger"
	apperrors "fakestore-etl/pkg/errors"
)

// Runner is one pipeline run end to end.
type Runner interface {
	Run(ctx context.Context) (*etl.Result, error)
}

// Notifier informs the configured address after a run exhausted its
// retries.
type Notifier interface {
	PipelineFailed(state string, cause error) error
}

type Scheduler struct {
	cfg      *config.Config
	runner   Runner
	notifier Notifier
	timer    *time.Timer
	log      zerolog.Logger

	mu      sync.Mutex
	running bool
	last    *etl.Result
}

func New(cfg *config.Config, runner Runner, notifier Notifier) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		runner:   runner,
		notifier: notifier,
		log:      logger.Get(),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.log.Info().Msg("Starting pipeline scheduler")

	if s.cfg.Scheduler.RunOnStart {
		s.log.Info().Msg("Running initial pipeline run on startup")
		s.runWithRetries(ctx)
	}

	nextRun := s.nextRunTime(time.Now())
	s.log.Info().Time("next_run", nextRun).Msg("Scheduled next pipeline run")
	s.timer = time.NewTimer(time.Until(nextRun))

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("Scheduler context cancelled")
			return ctx.Err()
		case <-s.timer.C:
			s.log.Info().Msg("Starting scheduled pipeline run")
			s.runWithRetries(ctx)

			nextRun = s.nextRunTime(time.Now())
			s.log.Info().Time("next_run", nextRun).Msg("Scheduled next pipeline run")
			s.timer.Reset(time.Until(nextRun))
		}
	}
}

func (s *Scheduler) Stop() {
	s.log.Info().Msg("Stopping pipeline scheduler")
	if s.timer != nil {
		s.timer.Stop()
	}
}

// Trigger starts a run outside the calendar, refusing while one is in
// flight. The run executes asynchronously with the configured retry
// policy.
func (s *Scheduler) Trigger() error {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if running {
		return apperrors.ErrRunInProgress
	}

	go s.runWithRetries(context.Background())
	return nil
}

// LastRun returns the terminal record of the most recent run, nil before
// the first one.
func (s *Scheduler) LastRun() *etl.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Scheduler) runWithRetries(ctx context.Context) {
	attempts := s.cfg.Scheduler.RetryAttempts

	for attempt := 0; ; attempt++ {
		result, err := s.runOnce(ctx)
		if errors.Is(err, apperrors.ErrRunInProgress) {
			s.log.Warn().Msg("Run skipped, previous run still in progress")
			return
		}
		if err == nil {
			s.log.Info().Int("attempt", attempt+1).Msg("Pipeline run succeeded")
			return
		}

		state := ""
		if result != nil {
			state = result.State
		}
		s.log.Error().Err(err).
			Int("attempt", attempt+1).
			Int("max_attempts", attempts+1).
			Str("state", state).
			Msg("Pipeline run failed")

		if attempt >= attempts {
			if s.notifier != nil {
				if nerr := s.notifier.PipelineFailed(state, err); nerr != nil {
					s.log.Error().Err(nerr).Msg("Failed to send failure notification")
				}
			}
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.cfg.Scheduler.RetryDelay):
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) (*etl.Result, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, apperrors.ErrRunInProgress
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	result, err := s.runner.Run(ctx)

	s.mu.Lock()
	s.last = result
	s.mu.Unlock()

	return result, err
}

// nextRunTime returns the next occurrence of the configured daily run
// time, end of day when none is configured.
func (s *Scheduler) nextRunTime(now time.Time) time.Time {
	hour, minute := 23, 59
	if s.cfg.Scheduler.RunAt != "" {
		if at, err := time.Parse("15:04", s.cfg.Scheduler.RunAt); err == nil {
			hour, minute = at.Hour(), at.Minute()
		} else {
			s.log.Warn().Str("run_at", s.cfg.Scheduler.RunAt).Msg("Invalid run_at, falling back to end of day")
		}
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !now.Before(next) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
