package textmeta

import (
	"strings"
	"testing"

	"github.com/storyloft/storyloft/pkg/metadata"
	"github.com/stretchr/testify/assert"
)

func TestExtractDescriptionFile_CatalogExport(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"https://www.getepic.com/app/read/12345",
		"The Big Red Dog",
		"Author: Mary Smith",
		"Ages 5-7",
		"Read time: 10 mins",
		"AR LEVEL: 2.5",
		"LEXILE: 500L",
		"GRL: J",
		"32 pages",
		"Start Reading",
		"A lovely story about a dog.",
		"Book Info",
	}, "\n")

	fragment := ExtractDescriptionFile(content)

	assert.Equal(t, "https://www.getepic.com/app/read/12345", fragment[metadata.FieldURL])
	assert.Equal(t, "The Big Red Dog", fragment[metadata.FieldTitle])
	assert.Equal(t, "Mary Smith", fragment[metadata.FieldAuthor])
	assert.Equal(t, "5-7", fragment[metadata.FieldAgeRange])
	assert.Equal(t, "10 mins", fragment[metadata.FieldReadTime])
	assert.Equal(t, "2.5", fragment[metadata.FieldARLevel])
	assert.Equal(t, "500L", fragment[metadata.FieldLexile])
	assert.Equal(t, "J", fragment[metadata.FieldGRL])
	assert.Equal(t, "32", fragment[metadata.FieldPages])
	assert.Equal(t, "A lovely story about a dog.", fragment[metadata.FieldDescription])
}

func TestExtractDescriptionFile_SynopsisMarkersCaseInsensitive(t *testing.T) {
	t.Parallel()

	fragment := ExtractDescriptionFile("start reading\nThe story lives here.\nbook info")

	assert.Equal(t, "The story lives here.", fragment[metadata.FieldDescription])
}

func TestExtractDescriptionFile_TruncationFallback(t *testing.T) {
	t.Parallel()

	content := "JUST RAW NOTES\n" + strings.Repeat("x", 600)
	fragment := ExtractDescriptionFile(content)

	// No markers, so the description falls back to a truncated copy.
	description := fragment[metadata.FieldDescription]
	assert.Len(t, description, maxNotesLength+3)
	assert.True(t, strings.HasSuffix(description, "..."))
	assert.Equal(t, description, fragment[metadata.FieldNotes])
}

func TestExtractDescriptionFile_ShortContentKeptWhole(t *testing.T) {
	t.Parallel()

	fragment := ExtractDescriptionFile("A short note about nothing much.")

	assert.Equal(t, "A short note about nothing much.", fragment[metadata.FieldNotes])
	assert.False(t, strings.HasSuffix(fragment[metadata.FieldNotes], "..."))
}

func TestExtractDescriptionFile_AgeRangeWithColon(t *testing.T) {
	t.Parallel()

	fragment := ExtractDescriptionFile("Ages: 8-10\nPages: 48")

	assert.Equal(t, "8-10", fragment[metadata.FieldAgeRange])
	assert.Equal(t, "48", fragment[metadata.FieldPages])
}
