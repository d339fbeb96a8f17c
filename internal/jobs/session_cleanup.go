package jobs

import (
	"fmt"
	"time"

	"dynastytrade/internal/repositories"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionCleanupJob periodically purges expired sessions so the sessions
// table does not grow without bound. Expired rows are already rejected at
// resolve time; this only reclaims storage.
type SessionCleanupJob struct {
	sessions *repositories.SessionRepository
	schedule string
	logger   *zap.Logger
	cron     *cron.Cron
}

func NewSessionCleanupJob(sessions *repositories.SessionRepository, schedule string, logger *zap.Logger) *SessionCleanupJob {
	return &SessionCleanupJob{
		sessions: sessions,
		schedule: schedule,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start schedules the cleanup. Returns an error when the schedule
// expression is invalid.
func (j *SessionCleanupJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if err := j.RunOnce(); err != nil {
			j.logger.Warn("session cleanup failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule session cleanup: %w", err)
	}

	j.cron.Start()
	j.logger.Info("session cleanup scheduled", zap.String("schedule", j.schedule))
	return nil
}

func (j *SessionCleanupJob) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

// RunOnce deletes every session that has already expired.
func (j *SessionCleanupJob) RunOnce() error {
	removed, err := j.sessions.DeleteExpired(time.Now())
	if err != nil {
		return err
	}
	if removed > 0 {
		j.logger.Info("purged expired sessions", zap.Int64("count", removed))
	}
	return nil
}
