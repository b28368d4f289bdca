package worker

import (
	"context"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/storyloft/storyloft/pkg/jobs"
	"github.com/storyloft/storyloft/pkg/models"
)

// ProcessIngestJob runs the pipeline over a library root and upserts one row
// per discovered item. A failing upsert skips that record; the run keeps
// going.
func (w *Worker) ProcessIngestJob(ctx context.Context, job *models.Job) error {
	log := logger.FromContext(ctx)

	data, ok := job.DataParsed.(*models.JobIngestData)
	if !ok {
		return errors.New("ingest job has no data")
	}

	rootPath := data.RootPath
	if rootPath == "" {
		rootPath = w.config.LibraryRoot
	}
	maxFolders := data.MaxFolders
	if maxFolders == 0 {
		maxFolders = w.config.MaxFolders
	}

	result, err := w.pipeline.Run(ctx, rootPath, maxFolders)
	if err != nil {
		return err
	}

	saved := 0
	for i, book := range result.Books {
		if err := w.bookService.UpsertBook(ctx, book); err != nil {
			log.Err(err).Error("upsert book error")
			continue
		}
		saved++

		if progress := (i + 1) * 100 / len(result.Books); progress != job.Progress {
			job.Progress = progress
			err = w.jobService.UpdateJob(ctx, job, jobs.UpdateJobOptions{
				Columns: []string{"progress"},
			})
			if err != nil {
				log.Err(err).Error("update job progress error")
			}
		}
	}

	log.Info("ingest job finished", logger.Data{
		"run_id":  result.RunID,
		"saved":   saved,
		"skipped": len(result.Skipped),
	})

	return nil
}
