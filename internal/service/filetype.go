package service

import (
	"path/filepath"
	"strings"

	"github.com/anthanhphan/go-dataset-preview/internal/domain"
)

var imageExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"gif":  {},
	"webp": {},
	"bmp":  {},
}

var datasetExtensions = map[string]struct{}{
	"csv":  {},
	"json": {},
	"xlsx": {},
	"xls":  {},
}

var datasetMimeTypes = map[string]struct{}{
	"text/csv":         {},
	"application/json": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
}

// classifyFile maps a filename and MIME type to a file type. Image checks
// win over dataset checks; anything unrecognized is a document. Total and
// deterministic, no inspection of content bytes.
func classifyFile(filename, mimeType string) domain.FileType {
	ext := fileExtension(filename)

	if _, ok := imageExtensions[ext]; ok || strings.HasPrefix(mimeType, "image/") {
		return domain.FileTypeImage
	}

	if _, ok := datasetExtensions[ext]; ok {
		return domain.FileTypeDataset
	}
	if _, ok := datasetMimeTypes[mimeType]; ok {
		return domain.FileTypeDataset
	}

	return domain.FileTypeDocument
}

// fileExtension returns the lowercase extension without the leading dot.
func fileExtension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}
