package domain

import (
	"fmt"
	"strings"
	"time"
)

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentVerified DocumentStatus = "verified"
	DocumentRejected DocumentStatus = "rejected"
)

// DocumentType is one entry of the server-defined upload catalog.
// Read-only reference data, fetched once per session.
type DocumentType struct {
	ID             int      `json:"id"`
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Category       string   `json:"category,omitempty"`
	IsRequired     bool     `json:"is_required,omitempty"`
	AllowedFormats []string `json:"allowed_formats"`
	MaxFileSize    int64    `json:"max_file_size"`
	IsActive       bool     `json:"is_active,omitempty"`
}

// SupportsMultipleUploads reports whether a type accumulates files instead
// of replacing the selection. Only the achievement-certificate types do.
func SupportsMultipleUploads(docTypeCode string) bool {
	return docTypeCode == "sertifikat_prestasi" || docTypeCode == "prestasi"
}

// UploadedDocument is a concrete file submitted against a DocumentType.
type UploadedDocument struct {
	ID             int            `json:"id"`
	DocumentType   string         `json:"document_type"`
	DocumentTypeID int            `json:"document_type_id,omitempty"`
	FileName       string         `json:"file_name"`
	FilePath       string         `json:"file_path"`
	FileType       string         `json:"file_type,omitempty"`
	FileSize       int64          `json:"file_size,omitempty"`
	Status         DocumentStatus `json:"status"`
	Keterangan     string         `json:"keterangan,omitempty"`
	VerifiedBy     *User          `json:"verified_by,omitempty"`
	CreatedAt      *time.Time     `json:"created_at,omitempty"`
}

// Deletable reports whether the client may remove the document. Verified
// documents are immutable from the client's side; the server is the actual
// enforcer.
func (d UploadedDocument) Deletable() bool {
	return d.Status != DocumentVerified
}

// FileInfo is the local view of a file picked for upload.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Extension returns the lowercase extension after the last dot, without
// the dot. Empty when the name has no extension.
func (f FileInfo) Extension() string {
	idx := strings.LastIndex(f.Name, ".")
	if idx < 0 || idx == len(f.Name)-1 {
		return ""
	}
	return strings.ToLower(f.Name[idx+1:])
}

type FileRejectKind string

const (
	RejectFormat FileRejectKind = "format"
	RejectSize   FileRejectKind = "size"
)

// FileValidationError carries the reject reason the way the upload form
// presents it.
type FileValidationError struct {
	Kind    FileRejectKind
	File    string
	Message string
}

func (e *FileValidationError) Error() string { return e.Message }

func (e *FileValidationError) Unwrap() error { return ErrInvalidInput }

// ValidateFile applies the catalog's local gate: format first, size second.
// The size message reports actual and maximum size in MB with one decimal
// place. Extension-based only; no content sniffing happens on this side.
func ValidateFile(file FileInfo, docType DocumentType) error {
	ext := file.Extension()
	allowed := false
	for _, f := range docType.AllowedFormats {
		if ext != "" && ext == strings.ToLower(f) {
			allowed = true
			break
		}
	}
	if !allowed {
		return &FileValidationError{
			Kind: RejectFormat,
			File: file.Name,
			Message: fmt.Sprintf(
				"File %q tidak dapat diterima. Format yang diizinkan untuk dokumen %s adalah: %s",
				file.Name, docType.Name, strings.ToUpper(strings.Join(docType.AllowedFormats, ", ")),
			),
		}
	}

	if file.Size > docType.MaxFileSize {
		return &FileValidationError{
			Kind: RejectSize,
			File: file.Name,
			Message: fmt.Sprintf(
				"File %q berukuran %.1fMB, melebihi batas maksimal %.1fMB untuk dokumen %s",
				file.Name, toMB(file.Size), toMB(docType.MaxFileSize), docType.Name,
			),
		}
	}
	return nil
}

func toMB(bytes int64) float64 {
	return float64(bytes) / 1024 / 1024
}

// FormatFileSize renders a byte count for display, e.g. "1.5 MB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", bytes, units[0])
	}
	return fmt.Sprintf("%s %s", trimZeros(fmt.Sprintf("%.2f", size)), units[unit])
}

func trimZeros(s string) string {
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
