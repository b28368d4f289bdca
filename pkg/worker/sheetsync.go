package worker

import (
	"context"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/storyloft/storyloft/pkg/books"
	"github.com/storyloft/storyloft/pkg/models"
	"github.com/storyloft/storyloft/pkg/sheets"
)

// ProcessSheetSyncJob replaces the external worksheet with the current
// records. The spreadsheet is a full mirror, not a diff target.
func (w *Worker) ProcessSheetSyncJob(ctx context.Context, job *models.Job) error {
	log := logger.FromContext(ctx)

	if w.sheetsClient == nil {
		return errors.New("sheets client is not configured")
	}

	allBooks, err := w.bookService.ListBooks(ctx, books.ListBooksOptions{})
	if err != nil {
		return err
	}

	err = w.sheetsClient.Replace(ctx, w.config.SheetsWorksheet, sheets.Rows(allBooks))
	if err != nil {
		return err
	}

	log.Info("sheet sync finished", logger.Data{"rows": len(allBooks)})

	return nil
}
