package records

import (
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/storyloft/storyloft/pkg/assets"
	"github.com/storyloft/storyloft/pkg/pages"
)

// Provenance is the side-channel blob attached to a record's notes column:
// everything about how the record came to be that doesn't fit a column.
type Provenance struct {
	FolderPath   string            `json:"folder_path,omitempty"`
	Files        *assets.Catalog   `json:"files,omitempty"`
	PageSequence []pages.Entry     `json:"page_sequence,omitempty"`
	TotalPages   int               `json:"total_pages,omitempty"`
	Sources      map[string]string `json:"sources,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
	RawNotes     string            `json:"raw_notes,omitempty"`
}

// Marshal serializes the blob for storage in the notes column.
func (p *Provenance) Marshal() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(b), nil
}

// ParseProvenance reads a stored blob back. An empty value yields an empty
// blob, not an error.
func ParseProvenance(raw string) (*Provenance, error) {
	p := &Provenance{}
	if raw == "" {
		return p, nil
	}
	if err := json.Unmarshal([]byte(raw), p); err != nil {
		return nil, errors.WithStack(err)
	}
	return p, nil
}
