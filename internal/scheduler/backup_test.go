package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBackuper struct {
	path string
	err  error
}

func (r *recordingBackuper) Backup(_ context.Context, path string) error {
	r.path = path
	return r.err
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "BackUp_(05-03-2026).xlsx", FileName(time.Date(2026, 3, 5, 22, 0, 0, 0, time.UTC)))
}

func TestBackupJob_WritesDatedFile(t *testing.T) {
	rec := &recordingBackuper{}
	dir := filepath.Join(t.TempDir(), "backups")
	job := NewBackupJob(rec, dir, zerolog.Nop())
	job.now = func() time.Time { return time.Date(2026, 4, 1, 22, 0, 0, 0, time.UTC) }

	path, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "BackUp_(01-04-2026).xlsx"), path)
	assert.Equal(t, path, rec.path)
	assert.DirExists(t, dir)
}

func TestBackupJob_ReportsFailure(t *testing.T) {
	job := NewBackupJob(&recordingBackuper{err: errors.New("disk full")}, t.TempDir(), zerolog.Nop())
	_, err := job.Run(context.Background())
	assert.ErrorContains(t, err, "disk full")
}

func TestNew_RejectsBadSchedule(t *testing.T) {
	job := NewBackupJob(&recordingBackuper{}, t.TempDir(), zerolog.Nop())

	_, err := New("every night", job, zerolog.Nop())
	assert.Error(t, err)

	s, err := New("0 22 * * *", job, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 1)
}
