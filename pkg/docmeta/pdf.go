package docmeta

import (
	"os"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pkg/errors"
	"github.com/storyloft/storyloft/pkg/metadata"
)

// extractPDF pulls the document information dictionary out of a PDF.
func extractPDF(path string) (metadata.Fragment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	info, err := api.PDFInfo(f, path, nil, false, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	fragment := metadata.Fragment{}
	fragment.Set(metadata.FieldTitle, info.Title)
	fragment.Set(metadata.FieldAuthor, info.Author)
	fragment.Set(metadata.FieldSubject, info.Subject)
	if info.PageCount > 0 {
		fragment.Set(metadata.FieldPages, strconv.Itoa(info.PageCount))
	}
	return fragment, nil
}
