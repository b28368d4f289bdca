// Package walker discovers item folders beneath a library root. Sections are
// the top-level directories; some route through category subdirectories,
// others hold item folders directly. Candidates holding several book-like
// subfolders are treated as collections and expanded one level.
package walker

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/storyloft/storyloft/pkg/models"
)

// Item is one discovered item folder.
type Item struct {
	Path      string
	Section   string
	Category  string
	MediaType string
}

// Skipped records a folder the walk could not process.
type Skipped struct {
	Path   string
	Reason string
}

// Result is the outcome of one walk.
type Result struct {
	Items   []Item
	Skipped []Skipped
}

// sectionMediaTypes maps the known top-level section names to media types.
// Unknown sections fall back to Book.
var sectionMediaTypes = map[string]string{
	"Read to Me Stories": models.MediaTypeReadToMe,
	"Video Books":        models.MediaTypeVideoBook,
	"Audiobooks":         models.MediaTypeAudiobook,
	"Books":              models.MediaTypeBook,
	"Videos":             models.MediaTypeVideo,
}

// categorizedSections route through a category subdirectory level before the
// item folders.
var categorizedSections = map[string]bool{
	"Read to Me Stories": true,
}

// Walker discovers item folders up to a folder cap.
type Walker struct {
	root       string
	maxFolders int
}

// New returns a walker over root. maxFolders caps how many item folders one
// walk may discover; zero or negative means no cap.
func New(root string, maxFolders int) *Walker {
	return &Walker{root: root, maxFolders: maxFolders}
}

// Walk discovers every item folder under the root. A missing root is fatal;
// anything wrong with an individual folder is logged, recorded as skipped,
// and the walk continues. Discovery stops as soon as the folder cap is
// reached, mid-section if necessary.
func (w *Walker) Walk(ctx context.Context) (*Result, error) {
	log := logger.FromContext(ctx)

	info, err := os.Stat(w.root)
	if err != nil || !info.IsDir() {
		return nil, errors.Errorf("root path does not exist: %s", w.root)
	}

	result := &Result{}
	sections, err := readDirNames(w.root)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, section := range sections {
		if w.full(result) {
			break
		}
		log.Info("processing section", logger.Data{"section": section})

		mediaType, ok := sectionMediaTypes[section]
		if !ok {
			mediaType = models.MediaTypeBook
		}

		sectionPath := filepath.Join(w.root, section)
		if categorizedSections[section] {
			w.walkCategorized(ctx, result, sectionPath, section, mediaType)
		} else {
			w.walkDirect(ctx, result, sectionPath, section, mediaType)
		}
	}

	log.Info("walk complete", logger.Data{"items": len(result.Items), "skipped": len(result.Skipped)})
	return result, nil
}

func (w *Walker) walkCategorized(ctx context.Context, result *Result, sectionPath, section, mediaType string) {
	log := logger.FromContext(ctx)

	categories, err := readDirNames(sectionPath)
	if err != nil {
		log.Warn("skipping unreadable section", logger.Data{"path": sectionPath, "err": err.Error()})
		result.Skipped = append(result.Skipped, Skipped{Path: sectionPath, Reason: err.Error()})
		return
	}

	for _, category := range categories {
		if w.full(result) {
			return
		}
		w.walkDirect(ctx, result, filepath.Join(sectionPath, category), section, mediaType)
	}
}

// walkDirect queues every subdirectory of dir as a candidate item folder,
// expanding collections one level.
func (w *Walker) walkDirect(ctx context.Context, result *Result, dir, section, mediaType string) {
	log := logger.FromContext(ctx)
	category := filepath.Base(dir)

	candidates, err := readDirNames(dir)
	if err != nil {
		log.Warn("skipping unreadable folder", logger.Data{"path": dir, "err": err.Error()})
		result.Skipped = append(result.Skipped, Skipped{Path: dir, Reason: err.Error()})
		return
	}

	for _, candidate := range candidates {
		if w.full(result) {
			return
		}
		candidatePath := filepath.Join(dir, candidate)

		if isCollection(candidatePath) {
			log.Info("expanding collection folder", logger.Data{"path": candidatePath})
			w.walkCollection(ctx, result, candidatePath, section, category, mediaType)
			continue
		}

		result.Items = append(result.Items, Item{
			Path:      candidatePath,
			Section:   section,
			Category:  category,
			MediaType: mediaType,
		})
	}
}

// walkCollection emits each qualifying subfolder of a collection as its own
// item. Collections never nest; subfolders are not re-checked.
func (w *Walker) walkCollection(ctx context.Context, result *Result, dir, section, category, mediaType string) {
	log := logger.FromContext(ctx)

	subfolders, err := readDirNames(dir)
	if err != nil {
		log.Warn("skipping unreadable collection", logger.Data{"path": dir, "err": err.Error()})
		result.Skipped = append(result.Skipped, Skipped{Path: dir, Reason: err.Error()})
		return
	}

	for _, subfolder := range subfolders {
		if w.full(result) {
			return
		}
		result.Items = append(result.Items, Item{
			Path:      filepath.Join(dir, subfolder),
			Section:   section,
			Category:  category,
			MediaType: mediaType,
		})
	}
}

func (w *Walker) full(result *Result) bool {
	return w.maxFolders > 0 && len(result.Items) >= w.maxFolders
}

// isCollection reports whether a candidate folder holds at least two
// subfolders with book-like content (a description file or media files).
func isCollection(dir string) bool {
	subfolders, err := readDirNames(dir)
	if err != nil {
		return false
	}

	withContent := 0
	for _, subfolder := range subfolders {
		if hasBookContent(filepath.Join(dir, subfolder)) {
			withContent++
			if withContent >= 2 {
				return true
			}
		}
	}
	return false
}

// hasBookContent reports whether a folder directly contains a description
// file or at least one media file.
func hasBookContent(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := strings.ToLower(entry.Name())
		if name == "description.txt" {
			return true
		}
		switch filepath.Ext(name) {
		case ".rtf", ".mp4", ".mp3", ".png":
			return true
		}
	}
	return false
}

// readDirNames lists the non-hidden subdirectories of dir in name order.
func readDirNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
