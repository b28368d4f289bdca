package docmeta

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/storyloft/storyloft/pkg/metadata"
)

// coreProperties models docProps/core.xml inside a DOCX container.
type coreProperties struct {
	XMLName     xml.Name `xml:"coreProperties"`
	Title       string   `xml:"title"`
	Creator     string   `xml:"creator"`
	Subject     string   `xml:"subject"`
	Description string   `xml:"description"`
	Keywords    string   `xml:"keywords"`
}

// extractDOCX reads the core properties part of a DOCX container.
func extractDOCX(path string) (metadata.Fragment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	stats, err := f.Stat()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	zipReader, err := zip.NewReader(f, stats.Size())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, file := range zipReader.File {
		if file.Name != "docProps/core.xml" {
			continue
		}
		r, err := file.Open()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		b, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			return nil, errors.WithStack(err)
		}

		var props coreProperties
		if err := xml.Unmarshal(b, &props); err != nil {
			return nil, errors.WithStack(err)
		}

		fragment := metadata.Fragment{}
		fragment.Set(metadata.FieldTitle, props.Title)
		fragment.Set(metadata.FieldAuthor, props.Creator)
		fragment.Set(metadata.FieldSubject, props.Subject)
		fragment.Set(metadata.FieldDescription, props.Description)
		return fragment, nil
	}

	// A container without core properties has nothing for us.
	return metadata.Fragment{}, nil
}
