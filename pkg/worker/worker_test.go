package worker

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/robinjoseph08/golib/logger"
	"github.com/storyloft/storyloft/pkg/assets"
	"github.com/storyloft/storyloft/pkg/books"
	"github.com/storyloft/storyloft/pkg/config"
	"github.com/storyloft/storyloft/pkg/migrations"
	"github.com/storyloft/storyloft/pkg/models"
	"github.com/storyloft/storyloft/pkg/records"
	"github.com/storyloft/storyloft/pkg/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func setupWorker(t *testing.T, db *bun.DB, client sheets.Client) *Worker {
	t.Helper()

	cfg := &config.Config{
		WorkerProcesses: 1,
		MaxFolders:      1000,
		SheetsWorksheet: "Books",
	}
	return New(cfg, db, nil, client)
}

func testContext() context.Context {
	return logger.New().WithContext(context.Background())
}

type fakeSheetsClient struct {
	worksheet string
	rows      [][]string
}

func (c *fakeSheetsClient) Replace(_ context.Context, worksheet string, rows [][]string) error {
	c.worksheet = worksheet
	c.rows = rows
	return nil
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestProcessIngestJob(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := testContext()
	w := setupWorker(t, db, nil)

	root := t.TempDir()
	write(t, filepath.Join(root, "Books", "Green Eggs", "description.txt"), "Author: Dr. Seuss\n")
	write(t, filepath.Join(root, "Books", "Green Eggs", "cover.jpg"), "x")

	job := &models.Job{
		Type:       models.JobTypeIngest,
		DataParsed: &models.JobIngestData{RootPath: root},
	}
	require.NoError(t, w.jobService.CreateJob(ctx, job))

	require.NoError(t, w.ProcessIngestJob(ctx, job))

	saved, err := w.bookService.ListBooks(ctx, books.ListBooksOptions{})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Green Eggs", saved[0].Title)
	assert.Equal(t, "Dr. Seuss", saved[0].Author)
	assert.Equal(t, "Books", saved[0].Section)

	// Re-running the same job updates rather than duplicates.
	require.NoError(t, w.ProcessIngestJob(ctx, job))
	saved, err = w.bookService.ListBooks(ctx, books.ListBooksOptions{})
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestProcessIngestJob_MissingRootFails(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := testContext()
	w := setupWorker(t, db, nil)

	job := &models.Job{
		Type:       models.JobTypeIngest,
		DataParsed: &models.JobIngestData{RootPath: filepath.Join(t.TempDir(), "nope")},
	}
	require.NoError(t, w.jobService.CreateJob(ctx, job))

	assert.Error(t, w.ProcessIngestJob(ctx, job))
}

func TestProcessBackfillJob(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := testContext()
	w := setupWorker(t, db, nil)

	// A record from before page sequences existed: legacy screenshots in the
	// catalog, no sequence in the blob.
	provenance := &records.Provenance{
		FolderPath: "/library/Books/Art/Old%20Book",
		Files: &assets.Catalog{
			Images: []string{"Screenshot (1).png", "Screenshot (2).png", "Screenshot (3).png"},
		},
	}
	notes, err := provenance.Marshal()
	require.NoError(t, err)

	book := &models.Book{
		Folderpath:   "/library/Books/Art/Old Book",
		Title:        "Old Book",
		TitleSource:  models.DataSourceFilepath,
		Author:       "Unknown",
		AuthorSource: models.DataSourceDefault,
		Status:       models.BookStatusActive,
		Notes:        notes,
	}
	require.NoError(t, w.bookService.CreateBook(ctx, book))

	job := &models.Job{Type: models.JobTypeBackfill}
	require.NoError(t, w.jobService.CreateJob(ctx, job))
	require.NoError(t, w.ProcessBackfillJob(ctx, job))

	updated, err := w.bookService.RetrieveBook(ctx, books.RetrieveBookOptions{ID: &book.ID})
	require.NoError(t, err)

	rebuilt, err := records.ParseProvenance(updated.Notes)
	require.NoError(t, err)
	require.Len(t, rebuilt.PageSequence, 3)
	assert.True(t, rebuilt.PageSequence[0].IsCover)
	assert.Equal(t, 0, rebuilt.PageSequence[0].PageNumber)
	assert.Equal(t, 2, rebuilt.TotalPages)
	assert.Equal(t, "2", updated.Pages)
}

func TestProcessSheetSyncJob(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := testContext()
	client := &fakeSheetsClient{}
	w := setupWorker(t, db, client)

	book := &models.Book{
		Folderpath:   "/library/Books/Art/A Gift for Sophie",
		Title:        "A Gift for Sophie",
		TitleSource:  models.DataSourceFilepath,
		Author:       "Jane Doe",
		AuthorSource: models.DataSourceFolder,
		Status:       models.BookStatusActive,
	}
	require.NoError(t, w.bookService.CreateBook(ctx, book))

	job := &models.Job{Type: models.JobTypeSheetSync}
	require.NoError(t, w.jobService.CreateJob(ctx, job))
	require.NoError(t, w.ProcessSheetSyncJob(ctx, job))

	assert.Equal(t, "Books", client.worksheet)
	require.Len(t, client.rows, 2)
	assert.Equal(t, "Name", client.rows[0][0])
	assert.Equal(t, "A Gift for Sophie", client.rows[1][0])
}

func TestProcessSheetSyncJob_NoClient(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := testContext()
	w := setupWorker(t, db, nil)

	job := &models.Job{Type: models.JobTypeSheetSync}
	require.NoError(t, w.jobService.CreateJob(ctx, job))
	assert.Error(t, w.ProcessSheetSyncJob(ctx, job))
}
