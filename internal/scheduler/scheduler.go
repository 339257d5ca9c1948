package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/task-manager-pro/internal/application"
)

// Scheduler runs the daily reminder sweep on a cron spec. Overlap
// protection lives in the notifier, so a slow sweep that outlasts the
// next tick just causes that tick to be skipped.
type Scheduler struct {
	cron     *cron.Cron
	notifier *application.Notifier
	logger   *logrus.Logger
}

func New(notifier *application.Notifier, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		notifier: notifier,
		logger:   logger,
	}
}

// Start registers the sweep job under spec (standard 5-field cron
// syntax, e.g. "0 9 * * *") and starts the cron loop.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, s.runSweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.WithField("spec", spec).Info("reminder scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("reminder scheduler stopped")
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if _, err := s.notifier.SendDailyReminders(ctx); err != nil {
		s.logger.WithError(err).Error("daily reminder sweep failed")
	}
}
