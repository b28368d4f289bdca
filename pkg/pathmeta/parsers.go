package pathmeta

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/storyloft/storyloft/pkg/metadata"
	"github.com/storyloft/storyloft/pkg/models"
)

// DefaultParsers returns the stock strategies in registration order.
func DefaultParsers() []Parser {
	return []Parser{
		&SeriesEpisodeParser{},
		&GradeLevelParser{},
		&PublisherSeriesParser{},
		&FolderParser{},
		&TaggedTextParser{},
		&PipeDelimitedParser{},
	}
}

// gradeToReadingLevel buckets a numeric grade into a display level.
func gradeToReadingLevel(grade int) string {
	switch {
	case grade <= 2:
		return "Pre-K to Grade 2"
	case grade <= 5:
		return "Grade 3-5"
	case grade <= 8:
		return "Grade 6-8"
	default:
		return "Grade 9-12"
	}
}

func stem(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// SeriesEpisodeParser handles names like "Series Name S01E02 - Episode
// Title.mp4".
type SeriesEpisodeParser struct{}

var seriesEpisodeRE = regexp.MustCompile(`(?i)(.+?)\s+S(\d+)E(\d+)\s*-\s*(.+)`)

func (p *SeriesEpisodeParser) Name() string  { return "series_episode" }
func (p *SeriesEpisodeParser) Priority() int { return 10 }

func (p *SeriesEpisodeParser) Applies(in Input) bool {
	return seriesEpisodeRE.MatchString(in.Filename)
}

func (p *SeriesEpisodeParser) Extract(in Input) (metadata.Fragment, error) {
	match := seriesEpisodeRE.FindStringSubmatch(stem(in.Filename))
	if match == nil {
		return nil, nil
	}
	fragment := metadata.Fragment{}
	fragment.Set(metadata.FieldTitle, match[4])
	fragment.Set(metadata.FieldSeries, match[1])
	fragment.Set(metadata.FieldMediaType, models.MediaTypeVideoBook)
	fragment.Set(metadata.FieldGenre, "Educational Series")
	fragment.Set(metadata.FieldNotes, fmt.Sprintf("Season %s, Episode %s", match[2], match[3]))
	return fragment, nil
}

// GradeLevelParser handles names like "Grade3_Math_Addition_Workbook.pdf".
type GradeLevelParser struct{}

var gradeLevelRE = regexp.MustCompile(`(?i)Grade(\d+)_([^_]+)_(.+)`)

func (p *GradeLevelParser) Name() string  { return "grade_level" }
func (p *GradeLevelParser) Priority() int { return 0 }

func (p *GradeLevelParser) Applies(in Input) bool {
	return gradeLevelRE.MatchString(in.Filename)
}

func (p *GradeLevelParser) Extract(in Input) (metadata.Fragment, error) {
	match := gradeLevelRE.FindStringSubmatch(stem(in.Filename))
	if match == nil {
		return nil, nil
	}
	grade, err := strconv.Atoi(match[1])
	if err != nil {
		return nil, err
	}
	subject := titleCase(strings.ReplaceAll(match[2], "_", " "))
	title := titleCase(strings.ReplaceAll(match[3], "_", " "))

	fragment := metadata.Fragment{}
	fragment.Set(metadata.FieldTitle, title)
	fragment.Set(metadata.FieldGenre, subject)
	fragment.Set(metadata.FieldReadingLevel, gradeToReadingLevel(grade))
	fragment.Set(metadata.FieldMediaType, models.MediaTypeReadToMe)
	fragment.Set(metadata.FieldNotes, fmt.Sprintf("Grade %d %s material", grade, subject))
	return fragment, nil
}

// PublisherSeriesParser handles names like "Scholastic - Magic School Bus -
// The Human Body.pdf".
type PublisherSeriesParser struct{}

func (p *PublisherSeriesParser) Name() string  { return "publisher_series" }
func (p *PublisherSeriesParser) Priority() int { return 0 }

func (p *PublisherSeriesParser) Applies(in Input) bool {
	return len(strings.Split(in.Filename, " - ")) >= 3
}

func (p *PublisherSeriesParser) Extract(in Input) (metadata.Fragment, error) {
	parts := strings.Split(stem(in.Filename), " - ")
	if len(parts) < 3 {
		return nil, nil
	}
	publisher := strings.TrimSpace(parts[0])
	series := strings.TrimSpace(parts[1])
	// The title itself may contain dashes.
	title := strings.TrimSpace(strings.Join(parts[2:], " - "))

	fragment := metadata.Fragment{}
	fragment.Set(metadata.FieldTitle, title)
	fragment.Set(metadata.FieldPublisher, publisher)
	fragment.Set(metadata.FieldSeries, series)
	fragment.Set(metadata.FieldAuthor, series+" Series")
	fragment.Set(metadata.FieldMediaType, models.MediaTypeReadToMe)
	fragment.Set(metadata.FieldNotes, fmt.Sprintf("Part of %s series by %s", series, publisher))
	return fragment, nil
}

// FolderParser reads an "Author/Series/Book Title/" folder structure.
type FolderParser struct{}

func (p *FolderParser) Name() string  { return "folder_structure" }
func (p *FolderParser) Priority() int { return 0 }

func folderSegments(folder string) []string {
	folder = strings.Trim(filepath.ToSlash(folder), "/")
	if folder == "" {
		return nil
	}
	return strings.Split(folder, "/")
}

func (p *FolderParser) Applies(in Input) bool {
	return len(folderSegments(in.Folder)) >= 3
}

func (p *FolderParser) Extract(in Input) (metadata.Fragment, error) {
	segments := folderSegments(in.Folder)
	if len(segments) < 3 {
		return nil, nil
	}
	author := segments[len(segments)-3]
	series := segments[len(segments)-2]
	bookFolder := segments[len(segments)-1]

	title := stem(in.Filename)
	switch strings.ToLower(title) {
	case "book", "main", "content":
		title = bookFolder
	}

	fragment := metadata.Fragment{}
	fragment.Set(metadata.FieldTitle, title)
	fragment.Set(metadata.FieldAuthor, author)
	fragment.Set(metadata.FieldSeries, series)
	fragment.Set(metadata.FieldNotes, fmt.Sprintf("From %s/%s collection", author, series))
	return fragment, nil
}

// TaggedTextParser reads .txt sidecars with tagged fields:
//
//	<title>Book Name</title>
//	<author>Author Name</author>
//	<grade>3</grade>
type TaggedTextParser struct{}

var taggedFieldPatterns = map[string]*regexp.Regexp{
	metadata.FieldTitle:       regexp.MustCompile(`(?is)<title>(.*?)</title>`),
	metadata.FieldAuthor:      regexp.MustCompile(`(?is)<author>(.*?)</author>`),
	metadata.FieldSubject:     regexp.MustCompile(`(?is)<subject>(.*?)</subject>`),
	metadata.FieldDescription: regexp.MustCompile(`(?is)<description>(.*?)</description>`),
	metadata.FieldISBN:        regexp.MustCompile(`(?is)<isbn>(.*?)</isbn>`),
	metadata.FieldPublisher:   regexp.MustCompile(`(?is)<publisher>(.*?)</publisher>`),
}

var taggedGradeRE = regexp.MustCompile(`(?is)<grade>(.*?)</grade>`)

func (p *TaggedTextParser) Name() string  { return "tagged_text" }
func (p *TaggedTextParser) Priority() int { return 0 }

func (p *TaggedTextParser) Applies(in Input) bool {
	if !strings.HasSuffix(strings.ToLower(in.Filename), ".txt") {
		return false
	}
	head, err := readHead(in.Path, 500)
	if err != nil {
		return false
	}
	lower := strings.ToLower(head)
	return strings.Contains(lower, "<title>") && strings.Contains(lower, "<author>")
}

func (p *TaggedTextParser) Extract(in Input) (metadata.Fragment, error) {
	content, err := os.ReadFile(in.Path)
	if err != nil {
		return nil, err
	}

	fragment := metadata.Fragment{}
	for field, pattern := range taggedFieldPatterns {
		if match := pattern.FindStringSubmatch(string(content)); match != nil {
			fragment.Set(field, match[1])
		}
	}
	if match := taggedGradeRE.FindStringSubmatch(string(content)); match != nil {
		if grade, err := strconv.Atoi(strings.TrimSpace(match[1])); err == nil {
			fragment.Set(metadata.FieldReadingLevel, gradeToReadingLevel(grade))
		}
	}
	if subject, ok := fragment[metadata.FieldSubject]; ok {
		fragment.Set(metadata.FieldGenre, subject)
	}
	return fragment, nil
}

// PipeDelimitedParser reads .txt sidecars whose first line is
// "Title|Author|Grade|Subject|Description".
type PipeDelimitedParser struct{}

func (p *PipeDelimitedParser) Name() string  { return "pipe_delimited" }
func (p *PipeDelimitedParser) Priority() int { return 0 }

func (p *PipeDelimitedParser) Applies(in Input) bool {
	if !strings.HasSuffix(strings.ToLower(in.Filename), ".txt") {
		return false
	}
	head, err := readHead(in.Path, 1024)
	if err != nil {
		return false
	}
	line, _, _ := strings.Cut(head, "\n")
	return strings.Count(line, "|") >= 3
}

var digitsRE = regexp.MustCompile(`\d+`)

func (p *PipeDelimitedParser) Extract(in Input) (metadata.Fragment, error) {
	content, err := os.ReadFile(in.Path)
	if err != nil {
		return nil, err
	}
	line, _, _ := strings.Cut(string(content), "\n")
	parts := strings.Split(strings.TrimSpace(line), "|")
	if len(parts) < 4 {
		return nil, nil
	}

	fragment := metadata.Fragment{}
	fragment.Set(metadata.FieldTitle, parts[0])
	fragment.Set(metadata.FieldAuthor, parts[1])
	fragment.Set(metadata.FieldGenre, parts[3])
	if digits := digitsRE.FindString(parts[2]); digits != "" {
		if grade, err := strconv.Atoi(digits); err == nil {
			fragment.Set(metadata.FieldReadingLevel, gradeToReadingLevel(grade))
		}
	}
	if len(parts) > 4 {
		fragment.Set(metadata.FieldDescription, parts[4])
	}
	return fragment, nil
}

func readHead(path string, n int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := f.Read(buf)
	if read == 0 && err != nil {
		return "", err
	}
	return string(buf[:read]), nil
}
