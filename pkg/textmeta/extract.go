package textmeta

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"
	"github.com/storyloft/storyloft/pkg/metadata"
)

var (
	whitespaceRE = regexp.MustCompile(`\s+`)

	// keyRE constrains what a "key: value" key can look like; it keeps JSON
	// lines and bare URLs from turning into junk keys.
	keyRE = regexp.MustCompile(`^[a-z0-9][a-z0-9 _-]*$`)
)

// structuredPatterns are per-field regex cascades evaluated over the whole
// text. For each field the first matching pattern wins.
var structuredPatterns = map[string][]*regexp.Regexp{
	metadata.FieldTitle: {
		regexp.MustCompile(`(?im)^title[:\s]+(.+?)\s*$`),
		regexp.MustCompile(`(?im)^book title[:\s]+(.+?)\s*$`),
	},
	metadata.FieldAuthor: {
		regexp.MustCompile(`(?im)^author[:\s]+(.+?)\s*$`),
		regexp.MustCompile(`(?im)^written by[:\s]+(.+?)\s*$`),
		regexp.MustCompile(`(?im)^by[:\s]+(.+?)\s*$`),
	},
	metadata.FieldDescription: {
		regexp.MustCompile(`(?is)description[:\s]+(.+?)(?:\n\n|\r\n\r\n|$)`),
		regexp.MustCompile(`(?is)summary[:\s]+(.+?)(?:\n\n|\r\n\r\n|$)`),
	},
	metadata.FieldISBN: {
		regexp.MustCompile(`(?i)isbn[-\s0-9]*[:\s]*(\d{13}|\d{10}|\d{1,5}-\d{1,7}-\d{1,7}-[\dX])`),
	},
	metadata.FieldYear: {
		regexp.MustCompile(`(?i)(?:published|year)[:\s]*(\d{4})`),
	},
}

// Extract parses a loosely structured text blob into a fragment of normalized
// fields. Three strategies run in order; later ones only add fields the
// earlier ones didn't set:
//
//  1. line-oriented "key: value" pairs mapped through the synonym table
//  2. per-field regex cascades over the whole text
//  3. embedded JSON objects found by balanced-brace search
func Extract(content string) metadata.Fragment {
	fragment := parseKeyValueLines(content)
	fragment.AddMissing(parseStructured(content))
	fragment.AddMissing(parseEmbeddedJSON(content))
	return fragment
}

func parseKeyValueLines(content string) metadata.Fragment {
	fragment := metadata.Fragment{}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = normalizeWhitespace(value)
		if key == "" || value == "" || !keyRE.MatchString(key) {
			continue
		}
		// A bare URL line splits into "https" and "//...".
		if strings.HasPrefix(value, "//") {
			continue
		}

		if field := normalizedField(key); field != "" {
			if field == metadata.FieldAuthor {
				value = CleanAuthorName(value)
				if !ValidAuthorName(value) {
					continue
				}
			}
			if _, exists := fragment[field]; !exists {
				fragment.Set(field, value)
			}
			continue
		}
		// Unrecognized keys are kept verbatim.
		if _, exists := fragment[key]; !exists {
			fragment.Set(key, value)
		}
	}

	return fragment
}

func parseStructured(content string) metadata.Fragment {
	fragment := metadata.Fragment{}

	for field, patterns := range structuredPatterns {
		for _, pattern := range patterns {
			match := pattern.FindStringSubmatch(content)
			if match == nil {
				continue
			}
			fragment.Set(field, normalizeWhitespace(match[1]))
			break
		}
	}

	// The author cascade has its own validity filtering.
	if _, ok := fragment[metadata.FieldAuthor]; !ok {
		if author := ExtractAuthor(content); author != "" {
			fragment.Set(metadata.FieldAuthor, author)
		}
	} else if !ValidAuthorName(fragment[metadata.FieldAuthor]) {
		cleaned := CleanAuthorName(fragment[metadata.FieldAuthor])
		if ValidAuthorName(cleaned) {
			fragment.Set(metadata.FieldAuthor, cleaned)
		} else {
			delete(fragment, metadata.FieldAuthor)
		}
	}

	return fragment
}

// parseEmbeddedJSON finds balanced {...} runs and merges any that decode as a
// JSON object. Scalar values are stringified; nested values are skipped.
func parseEmbeddedJSON(content string) metadata.Fragment {
	fragment := metadata.Fragment{}

	for _, block := range balancedBraceBlocks(content) {
		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(block), &decoded); err != nil {
			continue
		}
		for key, value := range decoded {
			key = strings.ToLower(strings.TrimSpace(key))
			if key == "" {
				continue
			}
			if field := normalizedField(key); field != "" {
				key = field
			}
			if _, exists := fragment[key]; exists {
				continue
			}
			switch v := value.(type) {
			case string:
				fragment.Set(key, normalizeWhitespace(v))
			case float64:
				fragment.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
			case bool:
				fragment.Set(key, strconv.FormatBool(v))
			}
		}
	}

	return fragment
}

// balancedBraceBlocks returns each top-level {...} run in the text.
func balancedBraceBlocks(content string) []string {
	var blocks []string
	depth := 0
	start := -1

	for i, r := range content {
		switch r {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				blocks = append(blocks, content[start:i+1])
				start = -1
			}
		}
	}

	return blocks
}

func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}
