// Package scheduler runs the background jobs (quote warm-up, cache cleanup,
// database maintenance) on cron schedules and keeps the outcome of each
// job's last run for the system status endpoint.
package scheduler

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is a unit of background work
type Job interface {
	Run() error
	Name() string
}

// JobStatus is the last known outcome of a job
type JobStatus struct {
	Name         string     `json:"name"`
	Schedule     string     `json:"schedule,omitempty"`
	Runs         int        `json:"runs"`
	LastRun      *time.Time `json:"last_run,omitempty"`
	LastDuration string     `json:"last_duration,omitempty"`
	LastError    string     `json:"last_error,omitempty"`
}

// Scheduler wraps robfig/cron. Schedules take an optional leading seconds
// field as well as descriptors such as "@every 5m"; a run still in progress
// makes the next tick for that job a no-op.
type Scheduler struct {
	cron   *cron.Cron
	log    zerolog.Logger
	mu     sync.Mutex
	status map[string]*JobStatus
}

// New creates a scheduler
func New(log zerolog.Logger) *Scheduler {
	log = log.With().Str("component", "scheduler").Logger()
	cl := cronLogger{log: log}

	parser := cron.NewParser(
		cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)

	return &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log:    log,
		status: make(map[string]*JobStatus),
	}
}

// Start begins firing scheduled jobs
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("jobs", s.JobCount()).Msg("Scheduler started")
}

// Stop halts the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("Scheduler stopped")
}

// AddJob registers job under a cron schedule, e.g. "@every 5m" or "0 0 * * * *"
func (s *Scheduler) AddJob(schedule string, job Job) error {
	if _, err := s.cron.AddFunc(schedule, func() { _ = s.run(job) }); err != nil {
		return fmt.Errorf("failed to schedule %s with %q: %w", job.Name(), schedule, err)
	}

	s.mu.Lock()
	s.entry(job.Name()).Schedule = schedule
	s.mu.Unlock()

	s.log.Info().Str("job", job.Name()).Str("schedule", schedule).Msg("Job registered")
	return nil
}

// RunNow runs job synchronously, outside its schedule, and records the outcome
func (s *Scheduler) RunNow(job Job) error {
	s.log.Info().Str("job", job.Name()).Msg("Running job immediately")
	return s.run(job)
}

// JobCount returns the number of scheduled jobs
func (s *Scheduler) JobCount() int {
	return len(s.cron.Entries())
}

// Statuses returns the status of every job that was scheduled or run, by name
func (s *Scheduler) Statuses() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]JobStatus, 0, len(s.status))
	for _, st := range s.status {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Scheduler) run(job Job) error {
	start := time.Now()
	err := job.Run()
	elapsed := time.Since(start)

	s.mu.Lock()
	st := s.entry(job.Name())
	st.Runs++
	startedAt := start.UTC()
	st.LastRun = &startedAt
	st.LastDuration = elapsed.Round(time.Millisecond).String()
	st.LastError = ""
	if err != nil {
		st.LastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Str("job", job.Name()).Dur("duration", elapsed).Msg("Job failed")
		return err
	}
	s.log.Debug().Str("job", job.Name()).Dur("duration", elapsed).Msg("Job completed")
	return nil
}

// entry must be called with mu held
func (s *Scheduler) entry(name string) *JobStatus {
	st, ok := s.status[name]
	if !ok {
		st = &JobStatus{Name: name}
		s.status[name] = st
	}
	return st
}

// cronLogger routes cron's own messages (skipped runs, recovered panics) to zerolog
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
