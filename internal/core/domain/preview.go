package domain

import "strings"

// PreviewKind is the closed classification the preview surface renders:
// an embedded document viewer, a zoomable image, or the open-in-new-tab
// fallback.
type PreviewKind string

const (
	PreviewPDF         PreviewKind = "pdf"
	PreviewImage       PreviewKind = "image"
	PreviewUnsupported PreviewKind = "unsupported"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}

// ClassifyPreview decides how a stored document is rendered, by filename
// extension and the reported MIME-ish type string. PDF wins over image.
func ClassifyPreview(fileName, fileType string) PreviewKind {
	if isPDF(fileName, fileType) {
		return PreviewPDF
	}
	if isImage(fileName, fileType) {
		return PreviewImage
	}
	return PreviewUnsupported
}

func isPDF(fileName, fileType string) bool {
	if t := strings.ToLower(fileType); t != "" && strings.Contains(t, "pdf") {
		return true
	}
	name := strings.ToLower(fileName)
	if strings.HasSuffix(name, ".pdf") {
		return true
	}
	// Stored paths sometimes lose the extension but keep "pdf" in the name.
	return strings.Contains(name, "pdf")
}

func isImage(fileName, fileType string) bool {
	t := strings.ToLower(fileType)
	if t != "" {
		if strings.Contains(t, "image/") {
			return true
		}
		for _, ext := range imageExtensions {
			if strings.Contains(t, strings.TrimPrefix(ext, ".")) {
				return true
			}
		}
	}
	name := strings.ToLower(fileName)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
