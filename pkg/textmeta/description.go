package textmeta

import (
	"regexp"
	"strings"

	"github.com/storyloft/storyloft/pkg/metadata"
)

// maxNotesLength caps how much raw sidecar content ends up in the notes field.
const maxNotesLength = 500

var (
	catalogURLRE = regexp.MustCompile(`https://www\.getepic\.com/app/read/\d+`)
	synopsisRE   = regexp.MustCompile(`(?is)Start Reading\s*(.*?)\s*Book Info`)

	arLevelRE = regexp.MustCompile(`(?i)AR LEVEL:\s*([0-9.]+)`)
	lexileRE  = regexp.MustCompile(`(?i)LEXILE[©]?:\s*([A-Z]*[0-9]+L?)`)
	grlRE     = regexp.MustCompile(`(?i)\bGRL:\s*([A-Z]{1,2})\b`)

	agePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Ages?:\s*([0-9]+(?:\s*-\s*[0-9]+)?)`),
		regexp.MustCompile(`(?i)Ages?\s+([0-9]+(?:\s*-\s*[0-9]+)?)`),
	}
	readTimePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Read time:\s*(.+)`),
		regexp.MustCompile(`(?i)Length:\s*(.+)`),
		regexp.MustCompile(`(?i)Duration:\s*(.+)`),
	}
	pagesPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Pages?:\s*([0-9]+%?)`),
		regexp.MustCompile(`(?i)([0-9]+)\s*pages?`),
	}

	titleLinePatterns = []*regexp.Regexp{
		// Catalog export format: URL on the first line, title on the next.
		regexp.MustCompile(`https://www\.getepic\.com/app/read/\d+\s*\n([^\n]+)`),
		regexp.MustCompile(`(?im)^Title:\s*(.+)$`),
		regexp.MustCompile(`(?m)(?:^|\n)([A-Z][^\n]{3,50})(?:\n)`),
	}
)

// ExtractDescriptionFile parses a description sidecar: the general extraction
// plus the enrichment fields (AR level, Lexile, GRL, age, read time, pages)
// and the free-text synopsis between the "Start Reading" and "Book Info"
// markers. Without both markers the synopsis falls back to the first 500
// characters of content.
func ExtractDescriptionFile(content string) metadata.Fragment {
	fragment := metadata.Fragment{}

	if match := catalogURLRE.FindString(content); match != "" {
		fragment.Set(metadata.FieldURL, match)
	}

	for _, pattern := range titleLinePatterns {
		match := pattern.FindStringSubmatch(content)
		if match == nil {
			continue
		}
		title := strings.TrimSpace(match[1])
		if len(title) > 3 && !strings.HasPrefix(title, "http") && !strings.HasPrefix(strings.ToLower(title), "author") {
			fragment.Set(metadata.FieldTitle, title)
			break
		}
	}

	if author := ExtractAuthor(content); author != "" {
		fragment.Set(metadata.FieldAuthor, author)
	}

	for _, pattern := range agePatterns {
		if match := pattern.FindStringSubmatch(content); match != nil {
			fragment.Set(metadata.FieldAgeRange, normalizeWhitespace(match[1]))
			break
		}
	}
	for _, pattern := range readTimePatterns {
		if match := pattern.FindStringSubmatch(content); match != nil {
			fragment.Set(metadata.FieldReadTime, firstLine(match[1]))
			break
		}
	}
	if match := arLevelRE.FindStringSubmatch(content); match != nil {
		fragment.Set(metadata.FieldARLevel, match[1])
	}
	if match := lexileRE.FindStringSubmatch(content); match != nil {
		fragment.Set(metadata.FieldLexile, match[1])
	}
	if match := grlRE.FindStringSubmatch(content); match != nil {
		fragment.Set(metadata.FieldGRL, match[1])
	}
	for _, pattern := range pagesPatterns {
		if match := pattern.FindStringSubmatch(content); match != nil {
			fragment.Set(metadata.FieldPages, match[1])
			break
		}
	}

	if match := synopsisRE.FindStringSubmatch(content); match != nil {
		fragment.Set(metadata.FieldDescription, normalizeWhitespace(match[1]))
	} else {
		fragment.Set(metadata.FieldDescription, truncate(content))
	}
	fragment.Set(metadata.FieldNotes, truncate(content))

	// Pick up anything else the general strategies can find.
	fragment.AddMissing(Extract(content))

	return fragment
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

func truncate(content string) string {
	content = strings.TrimSpace(content)
	if len(content) > maxNotesLength {
		return content[:maxNotesLength] + "..."
	}
	return content
}
