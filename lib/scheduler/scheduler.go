package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/dbsteward/partitioner/lib/partition"
)

const DefaultSchedule = "@daily"

// Refresher reconciles one table. *partition.Partitions satisfies it.
type Refresher interface {
	Refresh(ctx context.Context, cfg partition.Config) error
}

// Observer is told about every completed refresh
type Observer interface {
	ObserveRefresh(table string, at time.Time, err error)
}

type Job struct {
	Config   partition.Config
	Schedule string
}

// Scheduler runs refreshes on cron schedules. At most one refresh per
// table runs at a time, no matter how many jobs or callers ask for it.
type Scheduler struct {
	refresher Refresher
	observer  Observer
	clock     clockwork.Clock
	location  *time.Location
	logger    *slog.Logger

	group singleflight.Group
	cron  *cron.Cron
	jobs  []Job

	mu      sync.Mutex
	ctx     context.Context
	running bool
}

type Option func(*Scheduler)

func WithObserver(observer Observer) Option {
	return func(s *Scheduler) {
		s.observer = observer
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(s *Scheduler) {
		s.clock = clock
	}
}

// WithLocation sets the time zone cron schedules are evaluated in
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		s.location = loc
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

func New(refresher Refresher, opts ...Option) *Scheduler {
	s := &Scheduler{
		refresher: refresher,
		clock:     clockwork.NewRealClock(),
		location:  time.UTC,
		logger:    slog.Default(),
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	logger := cronLogger{s.logger}
	s.cron = cron.New(
		cron.WithLocation(s.location),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	return s
}

// Add registers a job. An empty schedule means DefaultSchedule.
func (s *Scheduler) Add(job Job) error {
	if job.Schedule == "" {
		job.Schedule = DefaultSchedule
	}
	if _, err := cron.ParseStandard(job.Schedule); err != nil {
		return errors.Wrapf(err, "invalid schedule %q for %s", job.Schedule, job.Config.ParentTableName())
	}
	cfg := job.Config
	_, err := s.cron.AddFunc(job.Schedule, func() {
		_ = s.RunOnce(s.context(), cfg)
	})
	if err != nil {
		return errors.Wrapf(err, "scheduling %s", cfg.ParentTableName())
	}
	s.mu.Lock()
	s.jobs = append(s.jobs, job)
	s.mu.Unlock()
	s.logger.Info("registered job", "table", cfg.ParentTableName(), "schedule", job.Schedule, "config", cfg.String())
	return nil
}

func (s *Scheduler) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// RunOnce refreshes cfg's table now, or waits for and shares the result of
// a refresh of the same table that is already in flight
func (s *Scheduler) RunOnce(ctx context.Context, cfg partition.Config) error {
	table := cfg.ParentTableName()
	_, err, shared := s.group.Do(table, func() (interface{}, error) {
		s.logger.Debug("refreshing", "table", table)
		err := s.refresher.Refresh(ctx, cfg)
		if s.observer != nil {
			s.observer.ObserveRefresh(table, s.clock.Now(), err)
		}
		return nil, err
	})
	if shared {
		s.logger.Debug("joined in-flight refresh", "table", table)
	}
	if err != nil {
		s.logger.Error("refresh failed", "table", table, "error", err)
		return err
	}
	s.logger.Info("refresh complete", "table", table)
	return nil
}

// RunAll refreshes every registered table once, attempting all of them
func (s *Scheduler) RunAll(ctx context.Context) error {
	s.mu.Lock()
	jobs := append([]Job{}, s.jobs...)
	s.mu.Unlock()

	var result *multierror.Error
	for _, job := range jobs {
		if err := s.RunOnce(ctx, job.Config); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "refreshing %s", job.Config.ParentTableName()))
		}
	}
	return result.ErrorOrNil()
}

// Start begins running jobs on schedule until ctx is done or Stop is called
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.ctx = ctx
	s.cron.Start()
	s.running = true
	s.logger.Info("scheduler started", "jobs", len(s.jobs))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
}

// Stop stops scheduling and waits for running jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the earliest upcoming run, or nil when nothing is scheduled
func (s *Scheduler) NextRun() *time.Time {
	var next *time.Time
	for _, entry := range s.cron.Entries() {
		if entry.Next.IsZero() {
			continue
		}
		if next == nil || entry.Next.Before(*next) {
			t := entry.Next
			next = &t
		}
	}
	return next
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
