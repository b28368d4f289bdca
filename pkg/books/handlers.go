package books

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/storyloft/storyloft/pkg/errcodes"
	"github.com/storyloft/storyloft/pkg/models"
	"github.com/storyloft/storyloft/pkg/records"
	"github.com/storyloft/storyloft/pkg/sheets"
)

type handler struct {
	bookService *Service
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

// retrieveProvenance returns the parsed provenance blob: asset catalog, page
// sequence, and per-field source attribution.
func (h *handler) retrieveProvenance(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	provenance, err := records.ParseProvenance(book.Notes)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, provenance))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, total, err := h.bookService.ListBooksWithTotal(ctx, ListBooksOptions{
		Limit:     &params.Limit,
		Offset:    &params.Offset,
		Section:   params.Section,
		MediaType: params.MediaType,
		Status:    params.Status,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Books []*models.Book `json:"books"`
		Total int            `json:"total"`
	}{books, total}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	// Bind params.
	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Fetch the book.
	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.Title != nil {
		book.Title = *params.Title
		book.TitleSource = models.DataSourceManual
		columns = append(columns, "title", "title_source")
	}
	if params.Author != nil {
		book.Author = *params.Author
		book.AuthorSource = models.DataSourceManual
		columns = append(columns, "author", "author_source")
	}
	if params.Genre != nil {
		book.Genre = *params.Genre
		columns = append(columns, "genre")
	}
	if params.ReadingLevel != nil {
		book.ReadingLevel = *params.ReadingLevel
		columns = append(columns, "reading_level")
	}
	if params.Status != nil {
		book.Status = *params.Status
		columns = append(columns, "status")
	}

	err = h.bookService.UpdateBook(ctx, book, UpdateBookOptions{Columns: columns})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

// exportCSV streams every record in the flat spreadsheet schema.
func (h *handler) exportCSV(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.ListBooks(ctx, ListBooksOptions{})
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="books.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	return errors.WithStack(sheets.WriteCSV(c.Response(), books))
}
