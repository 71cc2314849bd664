package scheduler

import (
	"context"
	"fmt"
	"time"

	"circles-backend/internal/logger"

	"github.com/go-co-op/gocron/v2"
)

// Job is a unit of periodic background work.
type Job interface {
	Name() string
	Interval() time.Duration
	Run(ctx context.Context) error
}

type Manager struct {
	scheduler gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewManager() (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		scheduler: s,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Register schedules job every job.Interval(). Jobs with a non-positive
// interval are skipped. A run that overlaps the previous one is dropped.
func (m *Manager) Register(job Job) error {
	if job.Interval() <= 0 {
		logger.Info("job %s disabled", job.Name())
		return nil
	}
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(job.Interval()),
		gocron.NewTask(func() { m.run(job) }),
		gocron.WithName(job.Name()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("register job %s: %w", job.Name(), err)
	}
	return nil
}

func (m *Manager) run(job Job) {
	start := time.Now()
	if err := job.Run(m.ctx); err != nil {
		logger.Error("job %s failed: %v", job.Name(), err)
		return
	}
	logger.Debug("job %s finished in %s", job.Name(), time.Since(start))
}

func (m *Manager) Jobs() []string {
	jobs := m.scheduler.Jobs()
	names := make([]string, len(jobs))
	for i, j := range jobs {
		names[i] = j.Name()
	}
	return names
}

func (m *Manager) Start() {
	m.scheduler.Start()
	logger.Info("scheduler started with %d jobs", len(m.scheduler.Jobs()))
}

func (m *Manager) Stop() {
	m.cancel()
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("shutdown scheduler: %v", err)
	}
	logger.Info("scheduler stopped")
}
