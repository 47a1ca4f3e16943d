package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ScrutinCloser closes the scrutins whose deadline has passed.
type ScrutinCloser interface {
	CloseExpired(ctx context.Context) (int64, error)
}

// Scheduler runs the periodic jobs of the site.
type Scheduler struct {
	cron     *cron.Cron
	scrutins ScrutinCloser
	log      logrus.FieldLogger
	timeout  time.Duration
}

func New(scrutins ScrutinCloser, log logrus.FieldLogger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		scrutins: scrutins,
		log:      log,
		timeout:  30 * time.Second,
	}
}

// Start registers the jobs and starts the cron loop. spec is a standard
// five field cron expression.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.closeExpiredScrutins); err != nil {
		return err
	}

	s.cron.Start()
	s.log.WithField("jobs", len(s.cron.Entries())).Info("scheduler started")
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) closeExpiredScrutins() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.scrutins.CloseExpired(ctx); err != nil {
		s.log.WithError(err).Error("failed to close expired scrutins")
	}
}
