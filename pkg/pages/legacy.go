package pages

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// legacyPatterns match the historical Screenshot naming conventions. The
// double space before the parenthesis is schema drift in old folders; it gets
// tolerated, not extended.
var legacyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Screenshot\s*\((\d+)\)\.png`),
	regexp.MustCompile(`Screenshot\s+(\d+)\.png`),
	regexp.MustCompile(`Screenshot.*?(\d+)\.png`),
}

// RebuildLegacy reconstructs the page sequence for an already persisted
// record from its cataloged image names, using the legacy "Screenshot
// (n).png" convention. Screenshot (1) is the cover/table of contents;
// Screenshot (n) for n>1 is page n-1. Returns nil when no image matches.
func RebuildLegacy(folderPath string, imageNames []string) []Entry {
	type numbered struct {
		number int
		name   string
	}

	var screenshots []numbered
	for _, name := range imageNames {
		if !strings.Contains(name, "Screenshot") || !strings.Contains(name, ".png") {
			continue
		}
		for _, pattern := range legacyPatterns {
			match := pattern.FindStringSubmatch(name)
			if match == nil {
				continue
			}
			number, err := strconv.Atoi(match[1])
			if err == nil {
				screenshots = append(screenshots, numbered{number: number, name: name})
			}
			break
		}
	}
	if len(screenshots) == 0 {
		return nil
	}

	sort.SliceStable(screenshots, func(i, j int) bool {
		return screenshots[i].number < screenshots[j].number
	})

	entries := make([]Entry, 0, len(screenshots))
	for _, s := range screenshots {
		entry := Entry{
			FilePath: EncodePath(folderPath + "/" + s.name),
			FileName: s.name,
			IsCover:  s.number == 1,
		}
		if s.number == 1 {
			entry.PageNumber = 0
			entry.DisplayName = "Cover/TOC"
		} else {
			entry.PageNumber = s.number - 1
			entry.DisplayName = fmt.Sprintf("Page %d", s.number-1)
		}
		entries = append(entries, entry)
	}
	return entries
}

// CountPages returns the number of non-cover entries in a sequence.
func CountPages(entries []Entry) int {
	count := 0
	for _, entry := range entries {
		if !entry.IsCover {
			count++
		}
	}
	return count
}
