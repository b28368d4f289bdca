package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/storyloft/storyloft/pkg/errcodes"
	"github.com/storyloft/storyloft/pkg/models"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID         *int
	Folderpath *string
}

type ListBooksOptions struct {
	Limit     *int
	Offset    *int
	Section   *string
	MediaType *string
	Status    *string

	includeTotal bool
}

type UpdateBookOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(book).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// upsertColumns are the columns refreshed when an ingest run revisits a
// folder that already has a record.
var upsertColumns = []string{
	"section", "category", "title", "title_source", "author", "author_source",
	"genre", "fiction_type", "media_type", "reading_level", "description",
	"url", "age_range", "read_time", "ar_level", "lexile", "grl", "pages",
	"audio_length", "video_length", "cover_image", "source_file", "status",
	"notes", "updated_at",
}

// UpsertBook inserts a record, or refreshes the existing row keyed by
// folderpath. Each record is one row; re-ingesting never duplicates.
func (svc *Service) UpsertBook(ctx context.Context, book *models.Book) error {
	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = now

	q := svc.db.
		NewInsert().
		Model(book).
		On("CONFLICT (folderpath) DO UPDATE")
	for _, column := range upsertColumns {
		q = q.Set(column + " = EXCLUDED." + column)
	}

	_, err := q.Returning("*").Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := svc.db.
		NewSelect().
		Model(book)

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}
	if opts.Folderpath != nil {
		q = q.Where("b.folderpath = ?", *opts.Folderpath)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	b, _, err := svc.listBooksWithTotal(ctx, opts)
	return b, errors.WithStack(err)
}

func (svc *Service) ListBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	opts.includeTotal = true
	return svc.listBooksWithTotal(ctx, opts)
}

func (svc *Service) listBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	books := []*models.Book{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&books).
		Order("b.created_at ASC")

	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}
	if opts.Section != nil {
		q = q.Where("b.section = ?", *opts.Section)
	}
	if opts.MediaType != nil {
		q = q.Where("b.media_type = ?", *opts.MediaType)
	}
	if opts.Status != nil {
		q = q.Where("b.status = ?", *opts.Status)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return books, total, nil
}

func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, opts UpdateBookOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	book.UpdatedAt = time.Now()
	opts.Columns = append(opts.Columns, "updated_at")

	_, err := svc.db.
		NewUpdate().
		Model(book).
		Column(opts.Columns...).
		WherePK().
		Returning("*").
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}
