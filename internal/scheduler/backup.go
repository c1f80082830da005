// Package scheduler runs the periodic workbook backup
package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// backupTimeout bounds a single backup run
const backupTimeout = 4 * time.Minute

// Backuper writes a full workbook backup to path
type Backuper interface {
	Backup(ctx context.Context, path string) error
}

// BackupJob writes BackUp_(dd-mm-yyyy).xlsx into its directory
type BackupJob struct {
	reports Backuper
	dir     string
	now     func() time.Time
	logger  zerolog.Logger
}

// NewBackupJob creates a job writing into dir
func NewBackupJob(reports Backuper, dir string, logger zerolog.Logger) *BackupJob {
	return &BackupJob{
		reports: reports,
		dir:     dir,
		now:     time.Now,
		logger:  logger,
	}
}

// FileName is the backup file written on day t
func FileName(t time.Time) string {
	return fmt.Sprintf("BackUp_(%s).xlsx", t.Format("02-01-2006"))
}

// Run writes one backup and returns its path. A backup from the same day is overwritten.
func (j *BackupJob) Run(ctx context.Context) (string, error) {
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory %s: %w", j.dir, err)
	}

	path := filepath.Join(j.dir, FileName(j.now()))
	if err := j.reports.Backup(ctx, path); err != nil {
		return "", fmt.Errorf("backup to %s failed: %w", path, err)
	}
	return path, nil
}

// Scheduler triggers the backup job on a cron schedule
type Scheduler struct {
	cron   *cron.Cron
	job    *BackupJob
	logger zerolog.Logger
}

// New registers job under the standard five-field cron schedule
func New(schedule string, job *BackupJob, logger zerolog.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)))
	s := &Scheduler{cron: c, job: job, logger: logger}

	if _, err := c.AddFunc(schedule, s.runOnce); err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	path, err := s.job.Run(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Scheduled backup failed")
		return
	}
	s.logger.Info().Str("path", path).Msg("Scheduled backup written")
}

// Start runs the scheduler in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Int("jobs", len(s.cron.Entries())).Msg("Backup scheduler started")
}

// Stop stops scheduling and waits for a running backup, bounded by ctx
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("Backup still running at shutdown")
	}
}
