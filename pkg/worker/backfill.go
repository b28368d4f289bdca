package worker

import (
	"context"
	"strconv"

	"github.com/robinjoseph08/golib/logger"
	"github.com/storyloft/storyloft/pkg/books"
	"github.com/storyloft/storyloft/pkg/models"
	"github.com/storyloft/storyloft/pkg/pages"
	"github.com/storyloft/storyloft/pkg/records"
)

// ProcessBackfillJob rebuilds the page sequence for persisted records that
// predate the reconstruction strategies. Those records cataloged their images
// under the legacy "Screenshot (n).png" naming but never got a sequence;
// their asset catalogs in the provenance blob have everything needed to
// rebuild one without touching the filesystem.
func (w *Worker) ProcessBackfillJob(ctx context.Context, job *models.Job) error {
	log := logger.FromContext(ctx)

	allBooks, err := w.bookService.ListBooks(ctx, books.ListBooksOptions{})
	if err != nil {
		return err
	}

	rebuilt := 0
	for _, book := range allBooks {
		provenance, err := records.ParseProvenance(book.Notes)
		if err != nil {
			log.Warn("unreadable provenance blob", logger.Data{"book_id": book.ID, "err": err.Error()})
			continue
		}
		if len(provenance.PageSequence) > 0 || provenance.Files == nil {
			continue
		}

		sequence := pages.RebuildLegacy(book.Folderpath, provenance.Files.Images)
		if len(sequence) == 0 {
			continue
		}

		provenance.PageSequence = sequence
		provenance.TotalPages = pages.CountPages(sequence)
		book.Notes, err = provenance.Marshal()
		if err != nil {
			log.Err(err).Error("marshal provenance error")
			continue
		}

		columns := []string{"notes"}
		if book.Pages == "" && provenance.TotalPages > 0 {
			book.Pages = strconv.Itoa(provenance.TotalPages)
			columns = append(columns, "pages")
		}

		err = w.bookService.UpdateBook(ctx, book, books.UpdateBookOptions{Columns: columns})
		if err != nil {
			log.Err(err).Error("update book error")
			continue
		}
		rebuilt++
	}

	log.Info("backfill finished", logger.Data{"examined": len(allBooks), "rebuilt": rebuilt})

	return nil
}
