package ports

import (
	"context"
	"io"

	"github.com/bersekolah/beswanadmin/internal/core/domain"
)

// UploadRequest is one multipart dispatch against the upload endpoint.
// Keterangan already carries any positional suffix for multi-file batches.
type UploadRequest struct {
	DocumentTypeCode string
	DocumentTypeID   int
	FileName         string
	Keterangan       string
	Body             io.Reader
}

// ExportRequest mirrors the /export query contract.
type ExportRequest struct {
	Tables    []string
	Format    string
	DateRange string
}

// ExportResult is the raw blob the export endpoint returned.
type ExportResult struct {
	Data        []byte
	ContentType string
}

// ScholarshipGateway is the HTTP contract of the Scholarship API
// collaborator. The server owns persistent state, authorization, and
// business-rule enforcement; every method is a plain request/response.
type ScholarshipGateway interface {
	ListApplications(ctx context.Context, q domain.ListQuery) (*domain.ApplicationPage, error)
	GetApplication(ctx context.Context, id int) (*domain.ApplicationDetail, error)
	UpdateStatus(ctx context.Context, id int, form domain.StatusForm) (*domain.Application, error)
	BulkUpdateStatus(ctx context.Context, ids []int, status domain.ApplicationStatus, catatanAdmin string) (int, error)
	Statistics(ctx context.Context) (*domain.Statistics, error)

	DocumentTypes(ctx context.Context, category string) ([]domain.DocumentType, error)
	MyDocuments(ctx context.Context, category string) ([]domain.UploadedDocument, error)
	UploadDocument(ctx context.Context, req UploadRequest) (*domain.UploadedDocument, error)
	DeleteDocument(ctx context.Context, id int) error

	Export(ctx context.Context, req ExportRequest) (*ExportResult, error)

	LatestMediaSosial(ctx context.Context) (*domain.MediaSosial, error)
	CreateMediaSosial(ctx context.Context, m domain.MediaSosial) (*domain.MediaSosial, error)
	UpdateMediaSosial(ctx context.Context, m domain.MediaSosial) (*domain.MediaSosial, error)
}

// TokenSource resolves the bearer credential before a request. A missing
// or expired credential short-circuits with domain.ErrUnauthorized before
// any network call.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// FileSource opens local files picked for upload.
type FileSource interface {
	Stat(path string) (domain.FileInfo, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// ExportSink persists a downloaded export blob.
type ExportSink interface {
	Save(ctx context.Context, name string, data io.Reader) (string, error)
}
