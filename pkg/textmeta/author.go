package textmeta

import (
	"regexp"
	"strings"
)

// authorPatterns is the ordered cascade for pulling an author name out of
// unstructured text. The first match that survives the validity filter wins.
var authorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^author:\s*([^,\n]+?)(?:\s*,\s*illustrator:.*)?$`),
	regexp.MustCompile(`(?im)^by:\s*([^,\n]+)`),
	regexp.MustCompile(`(?im)^authors?:\s*([^,\n]+)`),
	regexp.MustCompile(`(?im)^written by:\s*([^,\n]+)`),
	regexp.MustCompile(`(?im)^story by:\s*([^,\n]+)`),
	// A standalone "First Last" line, e.g. the author line under the title.
	regexp.MustCompile(`(?m)^([A-Z][a-z]+ [A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s*$`),
	regexp.MustCompile(`(?m)(?:^|\n)([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s*(?:\n|$)`),
}

var (
	authorPrefixRE      = regexp.MustCompile(`(?i)^(by|author|written by|story by):\s*`)
	illustratorSuffixRE = regexp.MustCompile(`(?i)\s*,?\s*(illustrator|illustrated by).*$`)
	digitRE             = regexp.MustCompile(`\d`)
	nameSuffixRE        = regexp.MustCompile(`\b(Jr|Sr|II|III|IV)\b`)
)

// nonNameWords disqualify a candidate outright; they show up when a pattern
// accidentally captures a heading or a stats line instead of a name.
var nonNameWords = []string{
	"book", "info", "ages", "read", "time", "level", "pages", "isbn",
	"publisher", "description",
}

// ExtractAuthor runs the author cascade over the text and returns the first
// candidate that passes the validity filter, cleaned up, or "".
func ExtractAuthor(content string) string {
	for _, pattern := range authorPatterns {
		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			candidate := CleanAuthorName(match[1])
			if ValidAuthorName(candidate) {
				return candidate
			}
		}
	}
	return ""
}

// CleanAuthorName strips credit prefixes, trailing illustrator credits, extra
// whitespace, and trailing punctuation.
func CleanAuthorName(name string) string {
	name = authorPrefixRE.ReplaceAllString(name, "")
	name = illustratorSuffixRE.ReplaceAllString(name, "")
	name = strings.Join(strings.Fields(name), " ")
	name = strings.TrimRight(name, ".,;:")
	return strings.TrimSpace(name)
}

// ValidAuthorName reports whether a candidate plausibly names a person.
func ValidAuthorName(name string) bool {
	if len(name) < 3 {
		return false
	}

	// Needs at least a first and last name.
	if !strings.Contains(name, " ") {
		return false
	}

	// Digits are out, unless it's a generational suffix like "III".
	if digitRE.MatchString(name) && !nameSuffixRE.MatchString(name) {
		return false
	}

	if name == strings.ToUpper(name) || name == strings.ToLower(name) {
		return false
	}

	lower := strings.ToLower(name)
	for _, word := range nonNameWords {
		if strings.Contains(lower, word) {
			return false
		}
	}

	// Every word should start with a capital letter.
	for _, word := range strings.Fields(name) {
		r := rune(word[0])
		if r < 'A' || r > 'Z' {
			return false
		}
	}

	return true
}
