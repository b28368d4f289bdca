package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
	"github.com/storyloft/storyloft/pkg/assets"
	"github.com/storyloft/storyloft/pkg/docmeta"
	"github.com/storyloft/storyloft/pkg/mediainfo"
	"github.com/storyloft/storyloft/pkg/metadata"
	"github.com/storyloft/storyloft/pkg/models"
	"github.com/storyloft/storyloft/pkg/pages"
	"github.com/storyloft/storyloft/pkg/pathmeta"
	"github.com/storyloft/storyloft/pkg/records"
	"github.com/storyloft/storyloft/pkg/textmeta"
	"github.com/storyloft/storyloft/pkg/walker"
)

// Pipeline turns discovered item folders into canonical book records. The
// custom-parser registry is injected at construction time; a pipeline runs
// items one at a time.
type Pipeline struct {
	registry *pathmeta.Registry
}

// NewPipeline returns a pipeline using the given registry. A nil registry is
// treated as empty.
func NewPipeline(registry *pathmeta.Registry) *Pipeline {
	if registry == nil {
		registry = pathmeta.NewRegistry()
	}
	return &Pipeline{registry: registry}
}

// Skip records one item folder the run could not process.
type Skip struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// RunResult is the outcome of one ingest run: every record built, plus the
// skip list. A run always returns both, even when the skip list is long.
type RunResult struct {
	RunID   string         `json:"run_id"`
	Books   []*models.Book `json:"books"`
	Skipped []Skip         `json:"skipped"`
}

// Run walks the root and processes every discovered item. A missing root is
// fatal; a failing item is logged, added to the skip list, and the run
// continues.
func (p *Pipeline) Run(ctx context.Context, rootPath string, maxFolders int) (*RunResult, error) {
	log := logger.FromContext(ctx)

	result := &RunResult{RunID: uuid.New().String()}
	log.Info("starting ingest run", logger.Data{"run_id": result.RunID, "root_path": rootPath, "max_folders": maxFolders})

	walked, err := walker.New(rootPath, maxFolders).Walk(ctx)
	if err != nil {
		return nil, err
	}
	for _, skipped := range walked.Skipped {
		result.Skipped = append(result.Skipped, Skip{Path: skipped.Path, Reason: skipped.Reason})
	}

	for _, item := range walked.Items {
		book, err := p.ProcessItem(ctx, item)
		if err != nil {
			log.Warn("skipping item", logger.Data{"run_id": result.RunID, "path": item.Path, "err": err.Error()})
			result.Skipped = append(result.Skipped, Skip{Path: item.Path, Reason: err.Error()})
			continue
		}
		result.Books = append(result.Books, book)
	}

	log.Info("ingest run finished", logger.Data{
		"run_id":  result.RunID,
		"books":   len(result.Books),
		"skipped": len(result.Skipped),
	})

	return result, nil
}

// ProcessItem builds one canonical record from one item folder: catalog the
// assets, run each extractor independently, merge the fragments by source
// priority, and attach the page sequence plus provenance.
func (p *Pipeline) ProcessItem(ctx context.Context, item walker.Item) (*models.Book, error) {
	catalog, err := assets.BuildCatalog(item.Path)
	if err != nil {
		return nil, err
	}

	sourceFile := primarySourceFile(catalog)

	sources := records.Sources{
		CustomParser: p.customFragment(ctx, item, catalog, sourceFile),
		Folder:       folderFragment(ctx, item.Path, catalog),
		Document:     documentFragment(ctx, item.Path, sourceFile),
		Filepath:     filepathFragment(item, sourceFile),
	}
	merged := records.Merge(sources)

	sequence := pages.Reconstruct(item.Path)
	cover := assets.FindCover(item.Path)

	book := bookFromMerged(item, merged)
	book.SourceFile = encodeInFolder(item.Path, sourceFile)
	if cover != "" {
		encoded := pages.EncodePath(cover)
		book.CoverImage = &encoded
	}
	if book.Pages == "" {
		if n := pages.CountPages(sequence); n > 0 {
			book.Pages = strconv.Itoa(n)
		}
	}
	fillDurations(ctx, book, item.Path, catalog)

	provenance := &records.Provenance{
		FolderPath:   pages.EncodePath(item.Path),
		Files:        catalog,
		PageSequence: sequence,
		TotalPages:   pages.CountPages(sequence),
		Sources:      merged.FieldSources,
		Extra:        merged.Extra,
	}
	book.Notes, err = provenance.Marshal()
	if err != nil {
		return nil, err
	}

	return book, nil
}

// bookFromMerged maps resolved canonical fields onto the record columns.
func bookFromMerged(item walker.Item, merged *records.Merged) *models.Book {
	fields := merged.Fields
	return &models.Book{
		Folderpath:   item.Path,
		Section:      item.Section,
		Category:     item.Category,
		Title:        fields[metadata.FieldTitle],
		TitleSource:  merged.FieldSources[metadata.FieldTitle],
		Author:       fields[metadata.FieldAuthor],
		AuthorSource: merged.FieldSources[metadata.FieldAuthor],
		Genre:        fields[metadata.FieldGenre],
		FictionType:  fields[metadata.FieldFictionType],
		MediaType:    fields[metadata.FieldMediaType],
		ReadingLevel: fields[metadata.FieldReadingLevel],
		Description:  fields[metadata.FieldDescription],
		URL:          fields[metadata.FieldURL],
		AgeRange:     fields[metadata.FieldAgeRange],
		ReadTime:     fields[metadata.FieldReadTime],
		ARLevel:      fields[metadata.FieldARLevel],
		Lexile:       fields[metadata.FieldLexile],
		GRL:          fields[metadata.FieldGRL],
		Pages:        fields[metadata.FieldPages],
		Status:       models.BookStatusActive,
	}
}

// documentExtensions are the embedded-property formats worth probing when an
// item has no audio or video source.
var documentExtensions = map[string]bool{
	".pdf":  true,
	".epub": true,
	".docx": true,
	".doc":  true,
}

// primarySourceFile picks the file that best represents the item: first
// video, then first audio, then the first document. Empty when the folder is
// all images and text.
func primarySourceFile(catalog *assets.Catalog) string {
	if len(catalog.Video) > 0 {
		return catalog.Video[0]
	}
	if len(catalog.Audio) > 0 {
		return catalog.Audio[0]
	}
	for _, name := range catalog.Other {
		if documentExtensions[strings.ToLower(filepath.Ext(name))] {
			return name
		}
	}
	return ""
}

// folderFragment reads folder-level metadata: a metadata.json sidecar first,
// then the description file, later values only filling gaps.
func folderFragment(ctx context.Context, dir string, catalog *assets.Catalog) metadata.Fragment {
	fragment := metadata.Fragment{}

	fragment.AddMissing(sidecarFragment(ctx, dir))

	name := descriptionFile(catalog)
	if name == "" {
		return fragment
	}
	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		logger.FromContext(ctx).Warn("reading description file failed", logger.Data{"path": filepath.Join(dir, name), "err": err.Error()})
		return fragment
	}
	text := string(content)
	if strings.EqualFold(filepath.Ext(name), ".rtf") {
		text = docmeta.StripRTF(text)
	}
	fragment.AddMissing(textmeta.ExtractDescriptionFile(text))

	return fragment
}

// sidecarFragment parses a metadata.json sidecar of flat key/value pairs.
// Missing or malformed sidecars yield an empty fragment.
func sidecarFragment(ctx context.Context, dir string) metadata.Fragment {
	path := filepath.Join(dir, "metadata.json")
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	raw := map[string]interface{}{}
	if err := json.Unmarshal(content, &raw); err != nil {
		logger.FromContext(ctx).Warn("malformed metadata sidecar", logger.Data{"path": path, "err": err.Error()})
		return nil
	}

	fragment := metadata.Fragment{}
	for key, value := range raw {
		key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_")
		switch v := value.(type) {
		case string:
			fragment.Set(key, v)
		case float64:
			fragment.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			fragment.Set(key, strconv.FormatBool(v))
		}
	}
	return fragment
}

// descriptionFile picks the folder's description file: description.txt wins,
// then the first RTF, then the first plain text file.
func descriptionFile(catalog *assets.Catalog) string {
	for _, name := range catalog.Text {
		if strings.EqualFold(name, "description.txt") {
			return name
		}
	}
	for _, name := range catalog.Text {
		if strings.EqualFold(filepath.Ext(name), ".rtf") {
			return name
		}
	}
	for _, name := range catalog.Text {
		if strings.EqualFold(filepath.Ext(name), ".txt") {
			return name
		}
	}
	return ""
}

// documentFragment probes embedded document properties from the primary
// source file. Failures are logged and substituted with an empty fragment.
func documentFragment(ctx context.Context, dir, sourceFile string) metadata.Fragment {
	if sourceFile == "" {
		return nil
	}
	path := filepath.Join(dir, sourceFile)
	fragment, err := docmeta.Extract(path)
	if err != nil {
		logger.FromContext(ctx).Warn("document extraction failed", logger.Data{"extractor": "document_properties", "path": path, "err": err.Error()})
		return nil
	}
	return fragment
}

// filepathFragment runs the filename heuristics. The walker's section-derived
// media type overrides the keyword guess.
func filepathFragment(item walker.Item, sourceFile string) metadata.Fragment {
	name := sourceFile
	if name == "" {
		name = filepath.Base(item.Path)
	}
	fragment := pathmeta.Parse(name, item.Path)
	if item.MediaType != "" {
		fragment[metadata.FieldMediaType] = item.MediaType
	}
	return fragment
}

// customFragment offers the item to the registry, one candidate file at a
// time: every text file, then the primary source file, then the folder
// itself. First non-empty fragment wins.
func (p *Pipeline) customFragment(ctx context.Context, item walker.Item, catalog *assets.Catalog, sourceFile string) metadata.Fragment {
	candidates := make([]string, 0, len(catalog.Text)+1)
	candidates = append(candidates, catalog.Text...)
	if sourceFile != "" {
		candidates = append(candidates, sourceFile)
	}

	for _, name := range candidates {
		in := pathmeta.Input{
			Path:     filepath.Join(item.Path, name),
			Filename: name,
			Folder:   item.Path,
		}
		if fragment := p.registry.Parse(ctx, in); len(fragment) > 0 {
			return fragment
		}
	}

	in := pathmeta.Input{
		Path:     item.Path,
		Filename: filepath.Base(item.Path),
		Folder:   filepath.Dir(item.Path),
	}
	return p.registry.Parse(ctx, in)
}

// fillDurations probes playback lengths for the first audio and video asset.
// Probe failures leave the field unset.
func fillDurations(ctx context.Context, book *models.Book, dir string, catalog *assets.Catalog) {
	log := logger.FromContext(ctx)

	if book.AudioLength == "" && len(catalog.Audio) > 0 {
		path := filepath.Join(dir, catalog.Audio[0])
		d, err := mediainfo.Duration(path)
		if err != nil {
			log.Warn("audio duration probe failed", logger.Data{"path": path, "err": err.Error()})
		} else {
			book.AudioLength = mediainfo.FormatLength(d)
		}
	}
	if book.VideoLength == "" && len(catalog.Video) > 0 {
		path := filepath.Join(dir, catalog.Video[0])
		d, err := mediainfo.Duration(path)
		if err != nil {
			log.Warn("video duration probe failed", logger.Data{"path": path, "err": err.Error()})
		} else {
			book.VideoLength = mediainfo.FormatLength(d)
		}
	}
}

// encodeInFolder joins and URL-encodes a file reference, or returns "" when
// there is no source file.
func encodeInFolder(dir, name string) string {
	if name == "" {
		return ""
	}
	return pages.EncodePath(filepath.Join(dir, name))
}
