// Package docmeta reads embedded metadata out of structured document
// containers. Each reader is format-specific and produces a fragment; no
// merging happens here.
package docmeta

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/storyloft/storyloft/pkg/metadata"
)

// extensionTypes is the fallback when content sniffing is inconclusive.
var extensionTypes = map[string]string{
	".pdf":  "application/pdf",
	".epub": "application/epub+zip",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".rtf":  "text/rtf",
	".txt":  "text/plain",
}

// genericTypes are sniffing results too vague to dispatch on; a .docx is
// still a zip to a content sniffer.
var genericTypes = map[string]bool{
	"application/octet-stream": true,
	"application/zip":          true,
	"text/plain":               true,
}

// DetectType returns the MIME type of a file, sniffing content first and
// falling back to the extension when the sniff is inconclusive.
func DetectType(path string) string {
	mtype, err := mimetype.DetectFile(path)
	if err == nil && !genericTypes[mtype.String()] {
		return mtype.String()
	}
	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	if err == nil {
		return mtype.String()
	}
	return "application/octet-stream"
}

// Extract reads embedded properties from a document, dispatching on its MIME
// type. Formats without embedded metadata yield an empty fragment, not an
// error.
func Extract(path string) (metadata.Fragment, error) {
	mimeType := DetectType(path)

	switch {
	case strings.Contains(mimeType, "pdf"):
		return extractPDF(path)
	case strings.Contains(mimeType, "epub"):
		return extractEPUB(path)
	case strings.Contains(mimeType, "wordprocessingml"), strings.Contains(mimeType, "msword"):
		return extractDOCX(path)
	}

	return metadata.Fragment{}, nil
}
