package textmeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidAuthorName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "simple first last", input: "Mary Smith", valid: true},
		{name: "three part name", input: "Mary Ann Smith", valid: true},
		{name: "generational suffix", input: "Martin Luther King Jr", valid: true},
		{name: "heading all caps", input: "BOOK INFO", valid: false},
		{name: "single word", input: "Smith", valid: false},
		{name: "too short", input: "Al", valid: false},
		{name: "all lowercase", input: "mary smith", valid: false},
		{name: "contains digits", input: "Chapter 12", valid: false},
		{name: "stats line", input: "Read Time Estimate", valid: false},
		{name: "pages line", input: "Total Pages Here", valid: false},
		{name: "lowercase second word", input: "Mary smith", valid: false},
		{name: "empty", input: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.valid, ValidAuthorName(tt.input))
		})
	}
}

func TestCleanAuthorName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain name", input: "Mary Smith", expected: "Mary Smith"},
		{name: "by prefix", input: "By: Mary Smith", expected: "Mary Smith"},
		{name: "author prefix", input: "Author: Mary Smith", expected: "Mary Smith"},
		{name: "illustrator credit", input: "Mary Smith, Illustrated by Jane Doe", expected: "Mary Smith"},
		{name: "trailing punctuation", input: "Mary Smith.", expected: "Mary Smith"},
		{name: "extra whitespace", input: "  Mary   Smith  ", expected: "Mary Smith"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, CleanAuthorName(tt.input))
		})
	}
}

func TestExtractAuthor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "author line",
			content:  "My Great Book\nAuthor: Mary Smith\nPages: 32",
			expected: "Mary Smith",
		},
		{
			name:     "by line",
			content:  "My Great Book\nBy: Dr. Seuss",
			expected: "Dr. Seuss",
		},
		{
			name:     "author with illustrator credit",
			content:  "Author: Mary Smith, Illustrator: Jane Doe",
			expected: "Mary Smith",
		},
		{
			name:     "standalone name line",
			content:  "AN AMAZING ADVENTURE\nMary Smith\n\nOnce upon a time...",
			expected: "Mary Smith",
		},
		{
			name:     "heading rejected",
			content:  "BOOK INFO\nAges: 5-7",
			expected: "",
		},
		{
			name:     "invalid author line falls through",
			content:  "Author: 12345\nWritten by: Mary Smith",
			expected: "Mary Smith",
		},
		{
			name:     "nothing usable",
			content:  "just some lowercase words\nand more of them",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ExtractAuthor(tt.content))
		})
	}
}
