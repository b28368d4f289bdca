package docmeta

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/storyloft/storyloft/pkg/metadata"
)

// opfPackage models the subset of the OPF package document we care about.
type opfPackage struct {
	XMLName  xml.Name `xml:"package"`
	Metadata struct {
		Title   []string `xml:"title"`
		Creator []struct {
			Text string `xml:",chardata"`
			Role string `xml:"role,attr"`
		} `xml:"creator"`
		Description string   `xml:"description"`
		Publisher   string   `xml:"publisher"`
		Subject     []string `xml:"subject"`
		Date        string   `xml:"date"`
		Language    string   `xml:"language"`
		Identifier  []struct {
			Text   string `xml:",chardata"`
			Scheme string `xml:"scheme,attr"`
		} `xml:"identifier"`
	} `xml:"metadata"`
}

// extractEPUB reads Dublin Core metadata from the OPF package document
// inside the EPUB container.
func extractEPUB(path string) (metadata.Fragment, error) {
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
		if filepath.Ext(file.Name) != ".opf" {
			continue
		}
		r, err := file.Open()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		fragment, err := parseOPF(r)
		r.Close()
		return fragment, err
	}

	return nil, errors.New("no opf file found")
}

func parseOPF(r io.Reader) (metadata.Fragment, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var pkg opfPackage
	if err := xml.Unmarshal(b, &pkg); err != nil {
		return nil, errors.WithStack(err)
	}

	fragment := metadata.Fragment{}
	if len(pkg.Metadata.Title) > 0 {
		fragment.Set(metadata.FieldTitle, pkg.Metadata.Title[0])
	}
	for _, creator := range pkg.Metadata.Creator {
		// Skip illustrators and other non-author roles.
		if creator.Role != "" && creator.Role != "aut" {
			continue
		}
		fragment.Set(metadata.FieldAuthor, creator.Text)
		break
	}
	fragment.Set(metadata.FieldDescription, pkg.Metadata.Description)
	fragment.Set(metadata.FieldPublisher, pkg.Metadata.Publisher)
	if len(pkg.Metadata.Subject) > 0 {
		fragment.Set(metadata.FieldSubject, pkg.Metadata.Subject[0])
	}
	fragment.Set(metadata.FieldLanguage, pkg.Metadata.Language)
	if len(pkg.Metadata.Date) >= 4 {
		fragment.Set(metadata.FieldYear, pkg.Metadata.Date[:4])
	}
	for _, identifier := range pkg.Metadata.Identifier {
		if strings.EqualFold(identifier.Scheme, "isbn") {
			fragment.Set(metadata.FieldISBN, identifier.Text)
			break
		}
	}
	return fragment, nil
}
