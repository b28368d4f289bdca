// Package assets inventories the files inside an item folder and locates its
// cover image.
package assets

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Catalog buckets the files found directly inside an item folder by kind.
// Membership matters, order doesn't.
type Catalog struct {
	Images []string `json:"images"`
	Audio  []string `json:"audio"`
	Video  []string `json:"video"`
	Text   []string `json:"text"`
	Other  []string `json:"other"`
}

var (
	imageExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true}
	audioExtensions = map[string]bool{".mp3": true, ".wav": true, ".m4a": true, ".aac": true}
	videoExtensions = map[string]bool{".mp4": true, ".mov": true, ".avi": true, ".mkv": true}
	textExtensions  = map[string]bool{".txt": true, ".rtf": true, ".md": true}
)

// BuildCatalog classifies every non-hidden regular file directly inside the
// folder. It does not recurse.
func BuildCatalog(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	catalog := &Catalog{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()
		switch ext := strings.ToLower(filepath.Ext(name)); {
		case imageExtensions[ext]:
			catalog.Images = append(catalog.Images, name)
		case audioExtensions[ext]:
			catalog.Audio = append(catalog.Audio, name)
		case videoExtensions[ext]:
			catalog.Video = append(catalog.Video, name)
		case textExtensions[ext]:
			catalog.Text = append(catalog.Text, name)
		default:
			catalog.Other = append(catalog.Other, name)
		}
	}
	return catalog, nil
}

// IsEmpty reports whether the catalog holds no files at all.
func (c *Catalog) IsEmpty() bool {
	return len(c.Images) == 0 && len(c.Audio) == 0 && len(c.Video) == 0 && len(c.Text) == 0 && len(c.Other) == 0
}

var coverNames = []string{"cover.jpg", "cover.png", "cover.jpeg"}

// FindCover locates the canonical cover image for an item folder. Tiers are
// consulted in order and the first match wins:
//
//  1. cover.jpg directly in the folder
//  2. any cover.jpg/png/jpeg in the folder
//  3. a cover file inside resized/, or resized/crop-1.png
//  4. Screenshot (1).png in the folder
//  5. any image whose name contains "cover"
//  6. the first image outside resized/, else the first image inside it
//
// No cover is not an error; the result is just "".
func FindCover(dir string) string {
	if fileExists(filepath.Join(dir, "cover.jpg")) {
		return filepath.Join(dir, "cover.jpg")
	}

	for _, name := range coverNames {
		if path := findCaseInsensitive(dir, name); path != "" {
			return path
		}
	}

	resized := filepath.Join(dir, "resized")
	if dirExists(resized) {
		if fileExists(filepath.Join(resized, "cover.jpg")) {
			return filepath.Join(resized, "cover.jpg")
		}
		for _, name := range coverNames {
			if path := findCaseInsensitive(resized, name); path != "" {
				return path
			}
		}
		if fileExists(filepath.Join(resized, "crop-1.png")) {
			return filepath.Join(resized, "crop-1.png")
		}
	}

	if fileExists(filepath.Join(dir, "Screenshot (1).png")) {
		return filepath.Join(dir, "Screenshot (1).png")
	}

	images := listImages(dir)
	for _, name := range images {
		if strings.Contains(strings.ToLower(name), "cover") {
			return filepath.Join(dir, name)
		}
	}

	if len(images) > 0 {
		return filepath.Join(dir, images[0])
	}
	if resizedImages := listImages(resized); len(resizedImages) > 0 {
		return filepath.Join(resized, resizedImages[0])
	}

	return ""
}

// listImages returns the jpg/jpeg/png files in a directory in name order.
func listImages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png":
			images = append(images, entry.Name())
		}
	}
	return images
}

func findCaseInsensitive(dir, name string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(entry.Name(), name) {
			return filepath.Join(dir, entry.Name())
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
