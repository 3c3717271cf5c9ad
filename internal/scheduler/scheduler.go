package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/scot00671234/wishwello/internal/service"
)

// jobTimeout bounds one cron run. Dispatching mail for many teams can be
// slow, but a wedged run must not overlap the next hourly tick chain.
const jobTimeout = 30 * time.Minute

// Scheduler drives the periodic jobs: hourly check-in dispatch and the
// weekly pulse calculation
type Scheduler struct {
	cronEngine      *cron.Cron
	checkinService  *service.CheckinService
	pulseService    *service.PulseService
	cronSpecCheckin string
	cronSpecPulse   string
	log             *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(
	checkinService *service.CheckinService,
	pulseService *service.PulseService,
	cronSpecCheckin string,
	cronSpecPulse string,
	log *logrus.Logger,
) *Scheduler {
	return &Scheduler{
		cronEngine:      cron.New(cron.WithLocation(time.Local)),
		checkinService:  checkinService,
		pulseService:    pulseService,
		cronSpecCheckin: cronSpecCheckin,
		cronSpecPulse:   cronSpecPulse,
		log:             log,
	}
}

// Start registers the jobs and launches the cron engine
func (s *Scheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpecCheckin, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		s.log.Debug("hourly check-in dispatch triggered")
		if err := s.checkinService.RunHourly(ctx, time.Now()); err != nil {
			s.log.WithError(err).Error("hourly check-in dispatch failed")
		}
	})
	if err != nil {
		return err
	}

	_, err = s.cronEngine.AddFunc(s.cronSpecPulse, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		s.log.Info("weekly pulse calculation triggered")
		if err := s.pulseService.RunWeekly(ctx); err != nil {
			s.log.WithError(err).Error("weekly pulse calculation failed")
		}
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.log.WithFields(logrus.Fields{
		"checkin": s.cronSpecCheckin,
		"pulse":   s.cronSpecPulse,
	}).Info("scheduler started")
	return nil
}

// Stop halts the cron engine and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}
