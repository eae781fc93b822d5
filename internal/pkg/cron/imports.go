package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/service/file"
)

const purgeInterval = time.Hour

// ImportJobs maintains archived attendance sheets
type ImportJobs struct {
	fileService file.FileService
	retention   time.Duration
}

func NewImportJobs(fileService file.FileService, retention time.Duration) *ImportJobs {
	return &ImportJobs{
		fileService: fileService,
		retention:   retention,
	}
}

func (j *ImportJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob("purge_import_archives", purgeInterval, j.PurgeImportArchives)
}

// PurgeImportArchives deletes archived sheets older than the retention window
func (j *ImportJobs) PurgeImportArchives(ctx context.Context) error {
	deleted, err := j.fileService.PurgeImportArchives(ctx, j.retention)
	if err != nil {
		return err
	}
	if deleted > 0 {
		slog.Info("Cron: Purged import archives", "deleted", deleted, "retention", j.retention)
	}
	return nil
}
