package records

import (
	"testing"

	"github.com/storyloft/storyloft/pkg/metadata"
	"github.com/storyloft/storyloft/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestMerge_PriorityOrder(t *testing.T) {
	t.Parallel()

	merged := Merge(Sources{
		CustomParser: metadata.Fragment{metadata.FieldTitle: "X"},
		Folder:       metadata.Fragment{metadata.FieldTitle: "Y", metadata.FieldAuthor: "Folder Author"},
		Document:     metadata.Fragment{metadata.FieldAuthor: "Doc Author", metadata.FieldPublisher: "Doc Press"},
		Filepath:     metadata.Fragment{metadata.FieldAuthor: "File Author", metadata.FieldGenre: "Adventure"},
	})

	assert.Equal(t, "X", merged.Fields[metadata.FieldTitle])
	assert.Equal(t, models.DataSourceCustomParser, merged.FieldSources[metadata.FieldTitle])
	assert.Equal(t, "Folder Author", merged.Fields[metadata.FieldAuthor])
	assert.Equal(t, models.DataSourceFolder, merged.FieldSources[metadata.FieldAuthor])
	assert.Equal(t, "Doc Press", merged.Fields[metadata.FieldPublisher])
	assert.Equal(t, models.DataSourceDocument, merged.FieldSources[metadata.FieldPublisher])
	assert.Equal(t, "Adventure", merged.Fields[metadata.FieldGenre])
	assert.Equal(t, models.DataSourceFilepath, merged.FieldSources[metadata.FieldGenre])
}

func TestMerge_UnknownDefaults(t *testing.T) {
	t.Parallel()

	merged := Merge(Sources{})

	// Categorical fields fall back to "Unknown" with a default source.
	for _, field := range []string{
		metadata.FieldTitle,
		metadata.FieldAuthor,
		metadata.FieldGenre,
		metadata.FieldMediaType,
		metadata.FieldReadingLevel,
	} {
		assert.Equal(t, UnknownValue, merged.Fields[field], field)
		assert.Equal(t, models.DataSourceDefault, merged.FieldSources[field], field)
	}

	// Non-categorical fields stay absent.
	_, ok := merged.Fields[metadata.FieldDescription]
	assert.False(t, ok)
	_, ok = merged.Fields[metadata.FieldISBN]
	assert.False(t, ok)
}

func TestMerge_EmptyValuesDoNotWin(t *testing.T) {
	t.Parallel()

	merged := Merge(Sources{
		CustomParser: metadata.Fragment{metadata.FieldTitle: "   "},
		Folder:       metadata.Fragment{metadata.FieldTitle: "Real Title"},
	})

	assert.Equal(t, "Real Title", merged.Fields[metadata.FieldTitle])
	assert.Equal(t, models.DataSourceFolder, merged.FieldSources[metadata.FieldTitle])
}

func TestMerge_TrimsValues(t *testing.T) {
	t.Parallel()

	merged := Merge(Sources{
		Folder: metadata.Fragment{metadata.FieldDescription: "  padded  "},
	})

	assert.Equal(t, "padded", merged.Fields[metadata.FieldDescription])
}

func TestMerge_CustomParserExtrasPassThrough(t *testing.T) {
	t.Parallel()

	merged := Merge(Sources{
		CustomParser: metadata.Fragment{
			metadata.FieldTitle: "Title",
			"season":            "2",
			"_parser_used":      "series_episode",
		},
		Folder: metadata.Fragment{"shelf": "A-17"},
	})

	assert.Equal(t, "2", merged.Extra["season"])
	// Internal fields never pass through.
	_, ok := merged.Extra["_parser_used"]
	assert.False(t, ok)
	// Extras only come from the custom-parser fragment.
	_, ok = merged.Extra["shelf"]
	assert.False(t, ok)
}

func TestMerge_FilepathBeatsDefaultOnly(t *testing.T) {
	t.Parallel()

	merged := Merge(Sources{
		Filepath: metadata.Fragment{metadata.FieldAuthor: "Unknown"},
	})

	// The filename fallback literally says "Unknown"; it still counts as a
	// filepath resolution, not a default.
	assert.Equal(t, UnknownValue, merged.Fields[metadata.FieldAuthor])
	assert.Equal(t, models.DataSourceFilepath, merged.FieldSources[metadata.FieldAuthor])
}
