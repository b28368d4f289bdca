package textmeta

import (
	"testing"

	"github.com/storyloft/storyloft/pkg/metadata"
	"github.com/stretchr/testify/assert"
)

func TestExtract_KeyValueLines(t *testing.T) {
	t.Parallel()

	content := "Title: My Great Book\nAuthor: Mary Smith\nISBN: 9781234567890\nGenre: Adventure\nShelf Code: A-17"
	fragment := Extract(content)

	assert.Equal(t, "My Great Book", fragment[metadata.FieldTitle])
	assert.Equal(t, "Mary Smith", fragment[metadata.FieldAuthor])
	assert.Equal(t, "9781234567890", fragment[metadata.FieldISBN])
	assert.Equal(t, "Adventure", fragment[metadata.FieldGenre])
	// Unrecognized keys survive verbatim.
	assert.Equal(t, "A-17", fragment["shelf code"])
}

func TestExtract_SynonymNormalization(t *testing.T) {
	t.Parallel()

	content := "Book Name: The Lost City\nWritten By: Mary Smith\nSynopsis: A thrilling tale.\nGuided Reading Level: K"
	fragment := Extract(content)

	assert.Equal(t, "The Lost City", fragment[metadata.FieldTitle])
	assert.Equal(t, "Mary Smith", fragment[metadata.FieldAuthor])
	assert.Equal(t, "A thrilling tale.", fragment[metadata.FieldDescription])
	assert.Equal(t, "K", fragment[metadata.FieldGRL])
}

func TestExtract_StructuredFallback(t *testing.T) {
	t.Parallel()

	// No "key: value" lines at all; the regex cascades have to do the work.
	content := "This booklet covers ISBN 9781234567890 and was Published 2019 by somebody."
	fragment := Extract(content)

	assert.Equal(t, "9781234567890", fragment[metadata.FieldISBN])
	assert.Equal(t, "2019", fragment[metadata.FieldYear])
}

func TestExtract_EmbeddedJSON(t *testing.T) {
	t.Parallel()

	content := "Exported record follows\n{\"title\": \"JSON Title\", \"pages\": 32, \"featured\": true}\n"
	fragment := Extract(content)

	assert.Equal(t, "JSON Title", fragment[metadata.FieldTitle])
	assert.Equal(t, "32", fragment[metadata.FieldPages])
	assert.Equal(t, "true", fragment["featured"])
}

func TestExtract_EarlierStrategiesWin(t *testing.T) {
	t.Parallel()

	content := "Title: KV Title\n{\"title\": \"JSON Title\", \"year\": 2020}"
	fragment := Extract(content)

	assert.Equal(t, "KV Title", fragment[metadata.FieldTitle])
	// The JSON strategy still fills in fields nobody else set.
	assert.Equal(t, "2020", fragment[metadata.FieldYear])
}

func TestExtract_InvalidAuthorDropped(t *testing.T) {
	t.Parallel()

	fragment := Extract("some text\nBy: BOOK INFO\nmore text")

	_, ok := fragment[metadata.FieldAuthor]
	assert.False(t, ok)
}

func TestExtract_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Extract(""))
	assert.Empty(t, Extract("   \n\n  "))
}
