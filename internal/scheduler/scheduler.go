package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"golang.org/x/sync/errgroup"

	"github.com/example/fideltutor/internal/review"
	sr "github.com/example/fideltutor/internal/spaced_repetition"
)

// Notifier interface for sending notifications
type Notifier interface {
	SendReminders(ctx context.Context, count int) error
}

// DueLoader returns the review queue for a day
type DueLoader interface {
	Load(ctx context.Context, today string) (review.Queue, error)
}

// Window is the inclusive range of local hours in which reminders are sent
type Window struct {
	StartHour int
	EndHour   int
}

// Contains reports whether hour lies inside the window
func (w Window) Contains(hour int) bool {
	return hour >= w.StartHour && hour <= w.EndHour
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	loader    DueLoader
	notifier  Notifier
	window    Window
	now       func() time.Time
	logger    *slog.Logger

	mu sync.Mutex
	// Day of the last reminder; at most one reminder is sent per day
	lastSent string
}

// New creates a new scheduler instance
func New(loader DueLoader, notifier Notifier, window Window, now func() time.Time, logger *slog.Logger) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		loader:    loader,
		notifier:  notifier,
		window:    window,
		now:       now,
		logger:    logger,
	}
}

// Start schedules the hourly reminder check and runs it in the background
// until Stop is called. The first check runs an hour after Start.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.scheduler.Every(1).Hour().WaitForSchedule().Do(func() {
		if _, err := s.CheckAndSendReminders(ctx); err != nil {
			s.logger.Error("reminder check failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder job: %w", err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("reminder scheduler started",
		"start_hour", s.window.StartHour, "end_hour", s.window.EndHour)
	return nil
}

// Run checks for due cards right away while the hourly job starts, then
// keeps the job running until ctx is done. A failing first check stops the
// job and is returned, so a broken store or notifier shows up at startup.
func (s *Scheduler) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.CheckAndSendReminders(gctx)
		if err != nil {
			return fmt.Errorf("initial reminder check: %w", err)
		}
		s.logger.Info("initial reminder check done", "reminded", n)
		return nil
	})

	g.Go(func() error {
		if err := s.Start(gctx); err != nil {
			return err
		}
		<-gctx.Done()
		s.Stop()
		s.logger.Info("reminder scheduler stopped")
		return nil
	})

	return g.Wait()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// CheckAndSendReminders sends a reminder when cards are due and the current
// hour is inside the notification window. It returns the number of due
// cards it reported, 0 when nothing was sent.
func (s *Scheduler) CheckAndSendReminders(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().In(time.Local)
	if !s.window.Contains(now.Hour()) {
		s.logger.Debug("outside notification hours, skipping reminders",
			"hour", now.Hour(), "start_hour", s.window.StartHour, "end_hour", s.window.EndHour)
		return 0, nil
	}

	today := sr.FormatDate(now)
	if s.lastSent == today {
		return 0, nil
	}

	queue, err := s.loader.Load(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to load due cards: %w", err)
	}

	count := len(queue.Items)
	if count == 0 {
		s.logger.Debug("no cards due", "next_due_date", queue.NextDueDate)
		return 0, nil
	}

	if err := s.notifier.SendReminders(ctx, count); err != nil {
		return 0, err
	}
	s.lastSent = today
	return count, nil
}
