package jobs

import (
	"context"
	"database/sql"
	"testing"

	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/storyloft/storyloft/pkg/migrations"
	"github.com/storyloft/storyloft/pkg/models"
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

func TestCreateJob_MarshalsData(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	job := &models.Job{
		Type:       models.JobTypeIngest,
		DataParsed: &models.JobIngestData{RootPath: "/library", MaxFolders: 50},
	}
	require.NoError(t, svc.CreateJob(ctx, job))
	require.NotZero(t, job.ID)
	assert.Equal(t, models.JobStatusPending, job.Status)

	retrieved, err := svc.RetrieveJob(ctx, RetrieveJobOptions{ID: &job.ID})
	require.NoError(t, err)

	data, ok := retrieved.DataParsed.(*models.JobIngestData)
	require.True(t, ok)
	assert.Equal(t, "/library", data.RootPath)
	assert.Equal(t, 50, data.MaxFolders)
}

func TestCreateJob_EmptyData(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	job := &models.Job{Type: models.JobTypeBackfill}
	require.NoError(t, svc.CreateJob(ctx, job))

	retrieved, err := svc.RetrieveJob(ctx, RetrieveJobOptions{ID: &job.ID})
	require.NoError(t, err)
	_, ok := retrieved.DataParsed.(*models.JobBackfillData)
	assert.True(t, ok)
}

func TestListJobs_ExcludesClaimedProcess(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	mine := &models.Job{Type: models.JobTypeIngest, DataParsed: &models.JobIngestData{}}
	require.NoError(t, svc.CreateJob(ctx, mine))
	mine.ProcessID = pointerutil.String("deadbeef")
	require.NoError(t, svc.UpdateJob(ctx, mine, UpdateJobOptions{Columns: []string{"process_id"}}))

	other := &models.Job{Type: models.JobTypeSheetSync}
	require.NoError(t, svc.CreateJob(ctx, other))

	jobs, err := svc.ListJobs(ctx, ListJobsOptions{
		Statuses:           []string{models.JobStatusPending},
		ProcessIDToExclude: pointerutil.String("deadbeef"),
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, other.ID, jobs[0].ID)
}

func TestHasActiveJobByType(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	active, err := svc.HasActiveJobByType(ctx, models.JobTypeIngest)
	require.NoError(t, err)
	assert.False(t, active)

	job := &models.Job{Type: models.JobTypeIngest, DataParsed: &models.JobIngestData{}}
	require.NoError(t, svc.CreateJob(ctx, job))

	active, err = svc.HasActiveJobByType(ctx, models.JobTypeIngest)
	require.NoError(t, err)
	assert.True(t, active)

	job.Status = models.JobStatusCompleted
	require.NoError(t, svc.UpdateJob(ctx, job, UpdateJobOptions{Columns: []string{"status"}}))

	active, err = svc.HasActiveJobByType(ctx, models.JobTypeIngest)
	require.NoError(t, err)
	assert.False(t, active)
}
