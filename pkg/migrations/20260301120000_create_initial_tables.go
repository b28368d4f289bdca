package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE jobs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				type TEXT NOT NULL,
				status TEXT NOT NULL,
				data TEXT NOT NULL,
				progress INTEGER NOT NULL,
				process_id TEXT,
				error TEXT
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE books (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				folderpath TEXT NOT NULL,
				section TEXT NOT NULL DEFAULT '',
				category TEXT NOT NULL DEFAULT '',
				title TEXT NOT NULL,
				title_source TEXT NOT NULL,
				author TEXT NOT NULL,
				author_source TEXT NOT NULL,
				genre TEXT NOT NULL DEFAULT '',
				fiction_type TEXT NOT NULL DEFAULT '',
				media_type TEXT NOT NULL DEFAULT '',
				reading_level TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				url TEXT NOT NULL DEFAULT '',
				age_range TEXT NOT NULL DEFAULT '',
				read_time TEXT NOT NULL DEFAULT '',
				ar_level TEXT NOT NULL DEFAULT '',
				lexile TEXT NOT NULL DEFAULT '',
				grl TEXT NOT NULL DEFAULT '',
				pages TEXT NOT NULL DEFAULT '',
				audio_length TEXT NOT NULL DEFAULT '',
				video_length TEXT NOT NULL DEFAULT '',
				cover_image TEXT,
				source_file TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL DEFAULT 'Active',
				notes TEXT NOT NULL DEFAULT ''
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_books_folderpath ON books (folderpath)`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		for _, stmt := range []string{
			`DROP TABLE IF EXISTS books`,
			`DROP TABLE IF EXISTS jobs`,
		} {
			if _, err := db.Exec(stmt); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
