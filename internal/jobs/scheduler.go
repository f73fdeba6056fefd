package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Job interface that all scheduled jobs must implement
type Job interface {
	Run(ctx context.Context) error
	GetNextRunTime() time.Time
}

// JobScheduler manages and runs scheduled jobs
type JobScheduler struct {
	jobs    map[string]Job
	timers  map[string]*time.Timer
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
	log     *logrus.Entry
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler() *JobScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &JobScheduler{
		jobs:   make(map[string]Job),
		timers: make(map[string]*time.Timer),
		ctx:    ctx,
		cancel: cancel,
		log:    logrus.WithField("component", "scheduler"),
	}
}

// Register adds a job to the scheduler
func (s *JobScheduler) Register(name string, job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[name] = job
	s.log.WithField("job", name).Info("Registered job")
}

// Start begins running all registered jobs
func (s *JobScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	s.running = true
	s.log.WithField("count", len(s.jobs)).Info("Starting job scheduler")

	for name, job := range s.jobs {
		s.scheduleJob(name, job)
	}

	return nil
}

// scheduleJob schedules a single job
func (s *JobScheduler) scheduleJob(name string, job Job) {
	nextRun := job.GetNextRunTime()
	duration := time.Until(nextRun)

	s.log.WithFields(logrus.Fields{
		"job":      name,
		"next_run": nextRun.Format(time.RFC3339),
	}).Debug("Job scheduled")

	timer := time.AfterFunc(duration, func() {
		s.runJob(name, job)
	})

	s.timers[name] = timer
}

// runJob executes a job and reschedules it
func (s *JobScheduler) runJob(name string, job Job) {
	s.wg.Add(1)
	defer s.wg.Done()

	startTime := time.Now()

	if err := job.Run(s.ctx); err != nil {
		s.log.WithField("job", name).WithError(err).Error("Job failed")
	} else {
		s.log.WithFields(logrus.Fields{
			"job":      name,
			"duration": time.Since(startTime).String(),
		}).Info("Job completed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.scheduleJob(name, job)
	}
}

// Stop gracefully stops all jobs
func (s *JobScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}

	s.log.Info("Stopping job scheduler")
	s.running = false

	for _, timer := range s.timers {
		timer.Stop()
	}
	s.timers = make(map[string]*time.Timer)

	s.mu.Unlock()

	// Cancel context and wait for running jobs
	s.cancel()
	s.wg.Wait()

	s.log.Info("Job scheduler stopped")
}

// RunNow immediately runs a specific job (useful for testing)
func (s *JobScheduler) RunNow(name string) error {
	s.mu.Lock()
	job, exists := s.jobs[name]
	s.mu.Unlock()

	if !exists {
		s.log.WithField("job", name).Warn("Job not found")
		return nil
	}

	return job.Run(s.ctx)
}

// GetStatus returns the status of all jobs
func (s *JobScheduler) GetStatus() map[string]JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := make(map[string]JobStatus)
	for name, job := range s.jobs {
		status[name] = JobStatus{
			Name:        name,
			NextRunTime: job.GetNextRunTime(),
			Registered:  true,
		}
	}

	return status
}

// JobStatus represents the status of a job
type JobStatus struct {
	Name        string    `json:"name"`
	NextRunTime time.Time `json:"next_run_time"`
	Registered  bool      `json:"registered"`
}
