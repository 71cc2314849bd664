package scheduler

import (
	"context"
	"time"

	"circles-backend/internal/logger"
	"circles-backend/internal/service"
)

// SessionSweepJob closes checkout sessions nobody has touched in a while.
type SessionSweepJob struct {
	investment service.InvestmentService
	interval   time.Duration
}

func NewSessionSweepJob(investment service.InvestmentService, interval time.Duration) *SessionSweepJob {
	return &SessionSweepJob{investment: investment, interval: interval}
}

func (j *SessionSweepJob) Name() string            { return "checkout_session_sweeper" }
func (j *SessionSweepJob) Interval() time.Duration { return j.interval }

func (j *SessionSweepJob) Run(ctx context.Context) error {
	j.investment.SweepSessions(ctx)
	return nil
}

// BackupJob takes a full backup on a timer, attributed to the system actor.
type BackupJob struct {
	admin    service.AdminService
	interval time.Duration
}

func NewBackupJob(admin service.AdminService, interval time.Duration) *BackupJob {
	return &BackupJob{admin: admin, interval: interval}
}

func (j *BackupJob) Name() string            { return "periodic_backup" }
func (j *BackupJob) Interval() time.Duration { return j.interval }

func (j *BackupJob) Run(ctx context.Context) error {
	backup, err := j.admin.CreateBackup(service.WithActor(ctx, service.SystemActor))
	if err != nil {
		return err
	}
	logger.Info("scheduled backup %s stored", backup.Name)
	return nil
}
