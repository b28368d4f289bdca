// Package records holds the metadata merge engine: it resolves the
// independent extraction fragments into one canonical record per item, with
// a fixed source-priority order and per-field fallback.
package records

import (
	"strings"

	"github.com/storyloft/storyloft/pkg/metadata"
	"github.com/storyloft/storyloft/pkg/models"
)

// UnknownValue is the fallback for categorical fields nothing resolved.
const UnknownValue = "Unknown"

// Sources carries the fragments feeding one merge, keyed by provenance.
// Any of them may be nil or empty.
type Sources struct {
	CustomParser metadata.Fragment
	Folder       metadata.Fragment
	Document     metadata.Fragment
	Filepath     metadata.Fragment
}

// fragment returns the fragment for a data source name.
func (s Sources) fragment(source string) metadata.Fragment {
	switch source {
	case models.DataSourceCustomParser:
		return s.CustomParser
	case models.DataSourceFolder:
		return s.Folder
	case models.DataSourceDocument:
		return s.Document
	case models.DataSourceFilepath:
		return s.Filepath
	}
	return nil
}

// mergeOrder is the resolution order; first non-empty value wins.
var mergeOrder = []string{
	models.DataSourceCustomParser,
	models.DataSourceFolder,
	models.DataSourceDocument,
	models.DataSourceFilepath,
}

// canonicalFields is the closed set of field names a merged record resolves.
var canonicalFields = []string{
	metadata.FieldTitle,
	metadata.FieldAuthor,
	metadata.FieldGenre,
	metadata.FieldFictionType,
	metadata.FieldMediaType,
	metadata.FieldReadingLevel,
	metadata.FieldDescription,
	metadata.FieldURL,
	metadata.FieldAgeRange,
	metadata.FieldReadTime,
	metadata.FieldARLevel,
	metadata.FieldLexile,
	metadata.FieldGRL,
	metadata.FieldPages,
	metadata.FieldCoverImage,
	metadata.FieldNotes,
	metadata.FieldPublisher,
	metadata.FieldSeries,
	metadata.FieldSubject,
	metadata.FieldISBN,
	metadata.FieldYear,
	metadata.FieldLanguage,
	metadata.FieldFormat,
}

// categoricalFields fall back to "Unknown" instead of an empty string.
var categoricalFields = map[string]bool{
	metadata.FieldTitle:        true,
	metadata.FieldAuthor:       true,
	metadata.FieldGenre:        true,
	metadata.FieldMediaType:    true,
	metadata.FieldReadingLevel: true,
}

// Merged is the outcome of one merge: resolved canonical fields, per-field
// source attribution, and the custom-parser extras carried through verbatim.
type Merged struct {
	Fields       map[string]string
	FieldSources map[string]string
	Extra        map[string]string
}

// Merge resolves the fragments into one canonical field set. For every
// canonical field the highest-priority source with a non-empty value wins;
// categorical fields fall back to "Unknown", the rest to "". Extra fields
// from the custom-parser fragment pass through verbatim unless their key
// carries the internal prefix. All values are trimmed as the final step.
func Merge(sources Sources) *Merged {
	merged := &Merged{
		Fields:       map[string]string{},
		FieldSources: map[string]string{},
		Extra:        map[string]string{},
	}

	for _, field := range canonicalFields {
		value, source := resolve(sources, field)
		if value == "" {
			if !categoricalFields[field] {
				continue
			}
			value, source = UnknownValue, models.DataSourceDefault
		}
		merged.Fields[field] = value
		merged.FieldSources[field] = source
	}

	canonical := map[string]bool{}
	for _, field := range canonicalFields {
		canonical[field] = true
	}
	for key, value := range sources.CustomParser {
		if canonical[key] || metadata.Internal(key) {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			merged.Extra[key] = value
		}
	}

	return merged
}

func resolve(sources Sources, field string) (string, string) {
	for _, source := range mergeOrder {
		if value := strings.TrimSpace(sources.fragment(source)[field]); value != "" {
			return value, source
		}
	}
	return "", ""
}
