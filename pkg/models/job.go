package models

import (
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/uptrace/bun"
)

const (
	JobStatusPending    = "pending"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

const (
	JobTypeIngest    = "ingest"
	JobTypeBackfill  = "backfill"
	JobTypeSheetSync = "sheet_sync"
)

type Job struct {
	bun.BaseModel `bun:"table:jobs,alias:j"`

	ID         int         `bun:",pk,nullzero" json:"id"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Type       string      `bun:",nullzero" json:"type"`
	Status     string      `bun:",nullzero" json:"status"`
	Data       string      `bun:",nullzero" json:"-"`
	DataParsed interface{} `bun:"-" json:"data"`
	Progress   int         `json:"progress"`
	ProcessID  *string     `json:"process_id,omitempty"`
	Error      *string     `json:"error,omitempty"`
}

func (job *Job) UnmarshalData() error {
	switch job.Type {
	case JobTypeIngest:
		job.DataParsed = &JobIngestData{}
	case JobTypeBackfill:
		job.DataParsed = &JobBackfillData{}
	case JobTypeSheetSync:
		job.DataParsed = &JobSheetSyncData{}
	}

	err := json.Unmarshal([]byte(job.Data), job.DataParsed)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// JobIngestData configures an ingest run over a library root.
type JobIngestData struct {
	RootPath   string `json:"root_path"`
	MaxFolders int    `json:"max_folders,omitempty"`
}

// JobBackfillData configures a legacy page-sequence backfill over persisted
// records.
type JobBackfillData struct{}

// JobSheetSyncData configures a spreadsheet sync of all records.
type JobSheetSyncData struct{}
