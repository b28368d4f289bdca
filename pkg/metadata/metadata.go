package metadata

import "strings"

// Canonical field names shared by all extractors. Extractors emit fragments
// keyed by these names; the merge engine resolves them into a single record.
const (
	FieldTitle        = "title"
	FieldAuthor       = "author"
	FieldPublisher    = "publisher"
	FieldDescription  = "description"
	FieldGenre        = "genre"
	FieldFictionType  = "fiction_type"
	FieldISBN         = "isbn"
	FieldYear         = "year"
	FieldPages        = "pages"
	FieldLanguage     = "language"
	FieldSeries       = "series"
	FieldReadingLevel = "reading_level"
	FieldMediaType    = "media_type"
	FieldFormat       = "format"
	FieldNotes        = "notes"
	FieldURL          = "url"
	FieldAgeRange     = "age_range"
	FieldReadTime     = "read_time"
	FieldARLevel      = "ar_level"
	FieldLexile       = "lexile"
	FieldGRL          = "grl"
	FieldCoverImage   = "cover_image"
	FieldSubject      = "subject"
)

// InternalPrefix marks fragment keys that are bookkeeping for the pipeline
// itself and must never be merged into a record or exported.
const InternalPrefix = "_"

// FieldParserUsed records which custom parser produced a fragment.
const FieldParserUsed = InternalPrefix + "parser_used"

// Fragment is the partial output of one extraction strategy: a mapping of
// normalized field names to values. A fragment makes no completeness
// guarantees and may be empty.
type Fragment map[string]string

// Set stores a value, dropping empty values after trimming.
func (f Fragment) Set(key, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	f[key] = value
}

// AddMissing copies every non-empty field of other that f doesn't already
// have. Earlier strategies always win.
func (f Fragment) AddMissing(other Fragment) {
	for key, value := range other {
		if _, ok := f[key]; ok {
			continue
		}
		f.Set(key, value)
	}
}

// Internal reports whether the key is internal pipeline bookkeeping.
func Internal(key string) bool {
	return strings.HasPrefix(key, InternalPrefix)
}
