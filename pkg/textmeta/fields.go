package textmeta

import "github.com/storyloft/storyloft/pkg/metadata"

// fieldSynonyms is the closed table mapping the key spellings seen in sidecar
// text files to normalized field names. Keys must be lowercase.
var fieldSynonyms = map[string][]string{
	metadata.FieldTitle:        {"title", "book title", "name", "book name"},
	metadata.FieldAuthor:       {"author", "by", "written by", "creator"},
	metadata.FieldPublisher:    {"publisher", "published by", "publication"},
	metadata.FieldDescription:  {"description", "summary", "about", "synopsis", "overview"},
	metadata.FieldGenre:        {"genre", "category", "classification"},
	metadata.FieldISBN:         {"isbn", "isbn-10", "isbn-13"},
	metadata.FieldYear:         {"year", "published", "publication year", "date"},
	metadata.FieldPages:        {"pages", "page count", "length"},
	metadata.FieldLanguage:     {"language", "lang"},
	metadata.FieldSeries:       {"series", "collection"},
	metadata.FieldReadingLevel: {"reading level", "grade level", "age group", "target age"},
	metadata.FieldFormat:       {"format", "type", "media type"},
	metadata.FieldNotes:        {"notes", "comments", "additional info"},
	metadata.FieldARLevel:      {"ar level"},
	metadata.FieldLexile:       {"lexile"},
	metadata.FieldGRL:          {"grl", "guided reading level"},
	metadata.FieldAgeRange:     {"age", "ages", "age range"},
	metadata.FieldReadTime:     {"read time", "reading time", "duration"},
}

// normalizedField returns the canonical field name for a raw key, or "" when
// the key isn't in the synonym table.
func normalizedField(key string) string {
	for field, synonyms := range fieldSynonyms {
		for _, synonym := range synonyms {
			if key == synonym {
				return field
			}
		}
	}
	return ""
}
