// Package pages reconstructs an ordered page sequence from the loosely named
// image files inside an item folder. The sequence is consumed by a URL-based
// viewer, so emitted paths use forward slashes and percent-encoded spaces.
package pages

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one element of a page sequence.
type Entry struct {
	PageNumber  int    `json:"page_number"`
	FilePath    string `json:"file_path"`
	FileName    string `json:"file_name"`
	IsCover     bool   `json:"is_cover"`
	IsLeftPage  bool   `json:"is_left_page"`
	DisplayName string `json:"display_name"`
}

// Reconstruct builds the page sequence for an item folder. Three strategies
// are tried in order; the first one that yields at least one entry wins:
//
//  1. resized/crop-N.png, probed contiguously from 1
//  2. screenshot N.png in the folder root, probed the same way
//  3. every other .png sorted by name, excluding cover.png/thumbnail.png
//
// An empty result is not an error; the folder just has no pages.
func Reconstruct(dir string) []Entry {
	if entries := cropStrategy(dir); len(entries) > 0 {
		return entries
	}
	if entries := screenshotStrategy(dir); len(entries) > 0 {
		return entries
	}
	return genericStrategy(dir)
}

// cropStrategy probes resized/crop-1.png, crop-2.png, ... stopping at the
// first gap.
func cropStrategy(dir string) []Entry {
	resized := filepath.Join(dir, "resized")

	var entries []Entry
	for i := 1; ; i++ {
		path := filepath.Join(resized, fmt.Sprintf("crop-%d.png", i))
		if !fileExists(path) {
			break
		}
		entries = append(entries, newEntry(i, path, len(entries)))
	}
	return entries
}

// screenshotStrategy probes "screenshot 1.png", "screenshot 2.png", ... in
// the folder root. Lowercase with a space, no parentheses.
func screenshotStrategy(dir string) []Entry {
	var entries []Entry
	for i := 1; ; i++ {
		path := filepath.Join(dir, fmt.Sprintf("screenshot %d.png", i))
		if !fileExists(path) {
			break
		}
		entries = append(entries, newEntry(i, path, len(entries)))
	}
	return entries
}

// genericStrategy numbers every remaining .png 1..N in case-insensitive name
// order. cover.png and thumbnail.png never count as pages.
func genericStrategy(dir string) []Entry {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range dirEntries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()
		if strings.ToLower(filepath.Ext(name)) != ".png" {
			continue
		}
		switch strings.ToLower(name) {
		case "cover.png", "thumbnail.png":
			continue
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	entries := make([]Entry, 0, len(names))
	for i, name := range names {
		entries = append(entries, newEntry(i+1, filepath.Join(dir, name), i))
	}
	return entries
}

// newEntry builds one sequence entry. Number 1 is the cover; left/right
// alternates starting with left at index 0.
func newEntry(number int, path string, index int) Entry {
	displayName := fmt.Sprintf("Page %d", number)
	if number == 1 {
		displayName = "Cover"
	}
	return Entry{
		PageNumber:  number,
		FilePath:    EncodePath(path),
		FileName:    filepath.Base(path),
		IsCover:     number == 1,
		IsLeftPage:  index%2 == 0,
		DisplayName: displayName,
	}
}

// EncodePath normalizes a path for the viewer: forward slashes, spaces
// percent-encoded.
func EncodePath(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), " ", "%20")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
