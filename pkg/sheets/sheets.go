package sheets

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
	"github.com/storyloft/storyloft/pkg/models"
)

// Header is the fixed column schema of the external spreadsheet. Order
// matters; the sync replaces whole rows.
var Header = []string{
	"Name", "Category", "Media", "URL", "Author", "Age", "Read time",
	"AR Level", "Lexile", "GRL", "Pages", "Audiobook Length", "Video Length",
	"Status", "Notes",
}

// Row reduces a record to the flat column schema. Internal fields never make
// it into a row; the provenance blob rides along in the Notes column.
func Row(book *models.Book) []string {
	return []string{
		book.Title,
		book.Category,
		book.MediaType,
		book.URL,
		book.Author,
		book.AgeRange,
		book.ReadTime,
		book.ARLevel,
		book.Lexile,
		book.GRL,
		book.Pages,
		book.AudioLength,
		book.VideoLength,
		book.Status,
		book.Notes,
	}
}

// Rows maps every record, header first.
func Rows(books []*models.Book) [][]string {
	rows := make([][]string, 0, len(books)+1)
	rows = append(rows, Header)
	for _, book := range books {
		rows = append(rows, Row(book))
	}
	return rows
}

// WriteCSV streams the records as CSV, header included.
func WriteCSV(w io.Writer, books []*models.Book) error {
	cw := csv.NewWriter(w)
	return errors.WithStack(cw.WriteAll(Rows(books)))
}
