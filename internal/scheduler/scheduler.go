// Package scheduler reloads the race collection on a cron schedule so the
// past/future classification follows the wall clock.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Reloader is what the refresher drives
type Reloader interface {
	LoadRaces(ctx context.Context) error
}

// Refresher manages scheduled race reloads
type Refresher struct {
	cron       *cron.Cron
	reloader   Reloader
	logger     *logrus.Logger
	jobTimeout time.Duration
	job        cron.Job

	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
	lastRun   time.Time
	lastErr   error
}

// NewRefresher creates a new refresher. Schedules are evaluated in loc.
func NewRefresher(reloader Reloader, loc *time.Location, jobTimeout time.Duration, logger *logrus.Logger) *Refresher {
	if loc == nil {
		loc = time.Local
	}
	if jobTimeout <= 0 {
		jobTimeout = time.Minute
	}
	r := &Refresher{
		cron:       cron.New(cron.WithLocation(loc)),
		reloader:   reloader,
		logger:     logger,
		jobTimeout: jobTimeout,
		jobIDs:     make([]cron.EntryID, 0),
	}
	// A reload still in flight when the next tick fires makes that tick a no-op
	r.job = cron.NewChain(cron.SkipIfStillRunning(cron.PrintfLogger(logger))).Then(cron.FuncJob(r.run))
	return r
}

// Schedule adds a reload job for a standard cron expression or descriptor
func (r *Refresher) Schedule(spec string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("cannot schedule job while refresher is running")
	}

	entryID, err := r.cron.AddJob(spec, r.job)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	r.jobIDs = append(r.jobIDs, entryID)
	r.logger.WithField("schedule", spec).Debug("Scheduled race reload")

	return nil
}

// RunNow performs one reload synchronously
func (r *Refresher) RunNow() error {
	r.run()

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.jobTimeout)
	defer cancel()

	start := time.Now()
	err := r.reloader.LoadRaces(ctx)

	r.mu.Lock()
	r.lastRun = start
	r.lastErr = err
	r.mu.Unlock()

	log := r.logger.WithField("duration", time.Since(start))
	if err != nil {
		log.WithError(err).Warn("Scheduled race reload failed")
		return
	}
	log.Debug("Scheduled race reload completed")
}

// Start starts the refresher
func (r *Refresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("refresher is already running")
	}

	if len(r.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	r.cron.Start()
	r.isRunning = true
	r.logger.WithField("jobs", len(r.jobIDs)).Debug("Refresher started")

	return nil
}

// Stop stops the refresher and waits for a running reload to finish
func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return
	}
	r.isRunning = false
	r.mu.Unlock()

	<-r.cron.Stop().Done()
	r.logger.Debug("Refresher stopped")
}

// IsRunning returns whether the refresher is currently running
func (r *Refresher) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isRunning
}

// LastRun returns when the last reload started and how it ended
func (r *Refresher) LastRun() (time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastRun, r.lastErr
}

// NextRun returns the time of the next scheduled reload
func (r *Refresher) NextRun() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.isRunning {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range r.jobIDs {
		entry := r.cron.Entry(jobID)
		if entry.Valid() && (nextRun.IsZero() || entry.Next.Before(nextRun)) {
			nextRun = entry.Next
		}
	}

	return nextRun
}
