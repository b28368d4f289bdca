// Package pathmeta derives metadata guesses from filenames and folder paths.
// Everything here is heuristic; outputs are fragments that the merge engine
// ranks below real metadata sources.
package pathmeta

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/storyloft/storyloft/pkg/metadata"
	"github.com/storyloft/storyloft/pkg/models"
)

// UnknownValue is the fallback for fields no heuristic could resolve.
const UnknownValue = "Unknown"

// splitPatterns are the title/author splitting patterns tried in order
// against the filename stem.
var splitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(.+?)\s*-\s*(.+)$`),
	regexp.MustCompile(`(?i)^(.+?)\s+by\s+(.+)$`),
	regexp.MustCompile(`(?i)^(.+?)\s*\((.+?)\)$`),
}

// authorIndicators match name shapes: "First Last", "F. Last", "Last, First".
var authorIndicators = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`),
	regexp.MustCompile(`\b[A-Z]\.\s*[A-Z][a-z]+\b`),
	regexp.MustCompile(`\b[A-Z][a-z]+,\s*[A-Z][a-z]+\b`),
}

// ParseFilename splits a filename into a title/author fragment. The first
// structural pattern to match wins; the author-likelihood heuristic decides
// which captured half is the author. With no match the whole stem becomes the
// title and the author falls back to "Unknown".
func ParseFilename(filename string) metadata.Fragment {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	fragment := metadata.Fragment{}

	for _, pattern := range splitPatterns {
		match := pattern.FindStringSubmatch(stem)
		if match == nil {
			continue
		}
		part1, part2 := strings.TrimSpace(match[1]), strings.TrimSpace(match[2])
		if looksLikeAuthor(part1) {
			fragment.Set(metadata.FieldTitle, part2)
			fragment.Set(metadata.FieldAuthor, part1)
		} else {
			fragment.Set(metadata.FieldTitle, part1)
			fragment.Set(metadata.FieldAuthor, part2)
		}
		return fragment
	}

	fragment.Set(metadata.FieldTitle, stem)
	fragment.Set(metadata.FieldAuthor, UnknownValue)
	return fragment
}

func looksLikeAuthor(text string) bool {
	for _, pattern := range authorIndicators {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// mediaTypeKeywords maps media types to the keywords that imply them, checked
// against the lowercased filename and folder segments.
var mediaTypeKeywords = []struct {
	mediaType string
	keywords  []string
}{
	{models.MediaTypeReadToMe, []string{"read-to-me", "readtome", "read_to_me", "read to me", "narrated", "audio-story"}},
	{models.MediaTypeAudiobook, []string{"audiobook", "audio-book", "audio_book", "mp3", "m4a", "wav"}},
	{models.MediaTypeVideoBook, []string{"video-book", "videobook", "video_book", "video book", "educational-video"}},
	{models.MediaTypeVideo, []string{"video", "mp4", "avi", "mov"}},
	{models.MediaTypeBook, []string{"book", "text", "reading", "literature", "novel", "story"}},
}

var (
	audioExtensions = map[string]bool{".mp3": true, ".m4a": true, ".wav": true, ".ogg": true}
	videoExtensions = map[string]bool{".mp4": true, ".avi": true, ".mov": true, ".mkv": true, ".webm": true}
)

// DetectMediaType guesses the media type from the file extension first, then
// from keywords across the filename and folder path segments.
func DetectMediaType(filename, folderPath string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if audioExtensions[ext] {
		return models.MediaTypeAudiobook
	}
	if videoExtensions[ext] {
		return models.MediaTypeVideoBook
	}

	sources := []string{strings.ToLower(filename)}
	if folderPath != "" {
		for _, part := range strings.Split(filepath.ToSlash(folderPath), "/") {
			sources = append(sources, strings.ToLower(part))
		}
	}
	combined := strings.Join(sources, " ")

	for _, entry := range mediaTypeKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(combined, keyword) {
				return entry.mediaType
			}
		}
	}

	return models.MediaTypeBook
}

var readingLevelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)grade[\s-]?(\d+)`),
	regexp.MustCompile(`(?i)(\d+)(?:st|nd|rd|th)[\s-]?grade`),
	regexp.MustCompile(`(?i)level[\s-]?([a-z])\b`),
	regexp.MustCompile(`(?i)\b([a-z])[\s-]level`),
}

var preKRE = regexp.MustCompile(`(?i)pre[\s-]?k|kindergarten`)

// DetectReadingLevel extracts a reading level from the filename or folder
// path, normalized to "Grade N", "Level X", or "Pre-K". Nothing found means
// "" so the merge fallback applies.
func DetectReadingLevel(filename, folderPath string) string {
	combined := strings.ToLower(filename)
	if folderPath != "" {
		combined += " " + strings.ToLower(folderPath)
	}

	if preKRE.MatchString(combined) {
		return "Pre-K"
	}
	for _, pattern := range readingLevelPatterns {
		match := pattern.FindStringSubmatch(combined)
		if match == nil {
			continue
		}
		level := match[1]
		if level[0] >= '0' && level[0] <= '9' {
			return "Grade " + level
		}
		return "Level " + strings.ToUpper(level)
	}

	return ""
}

// Parse combines the filename split with the path-derived guesses into one
// heuristic fragment.
func Parse(filename, folderPath string) metadata.Fragment {
	fragment := ParseFilename(filename)
	fragment.Set(metadata.FieldMediaType, DetectMediaType(filename, folderPath))
	if level := DetectReadingLevel(filename, folderPath); level != "" {
		fragment.Set(metadata.FieldReadingLevel, level)
	}
	return fragment
}
