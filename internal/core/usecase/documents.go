package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/bersekolah/beswanadmin/internal/core/domain"
	"github.com/bersekolah/beswanadmin/internal/core/ports"
)

// DocumentPipeline attaches files against the server-defined document
// catalog: local format/size validation before upload, one multipart
// request per file, and a fresh (cache-busted) document listing after
// every mutation. Verification state changes server-side independent of
// anything this client does, so the listing is never trusted from cache.
type DocumentPipeline struct {
	gateway ports.ScholarshipGateway
	files   ports.FileSource
	logger  *slog.Logger
	limiter *rate.Limiter

	category string

	catalog []domain.DocumentType
	docs    []domain.UploadedDocument

	selectedType string
	selection    []domain.FileInfo
}

func NewDocumentPipeline(gateway ports.ScholarshipGateway, files ports.FileSource, logger *slog.Logger, category string) *DocumentPipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentPipeline{
		gateway:  gateway,
		files:    files,
		logger:   logger,
		category: category,
		// paces multi-file dispatch; the source applied an upload cooldown
		limiter: rate.NewLimiter(rate.Every(300*time.Millisecond), 3),
	}
}

// LoadCatalog fetches the document-type catalog. An unreachable API is an
// error the caller surfaces; no synthetic catalog is fabricated.
func (p *DocumentPipeline) LoadCatalog(ctx context.Context) ([]domain.DocumentType, error) {
	types, err := p.gateway.DocumentTypes(ctx, p.category)
	if err != nil {
		return nil, err
	}
	p.catalog = types
	return types, nil
}

// Refresh refetches the user's uploaded documents. The gateway cache-busts
// the request.
func (p *DocumentPipeline) Refresh(ctx context.Context) ([]domain.UploadedDocument, error) {
	docs, err := p.gateway.MyDocuments(ctx, p.category)
	if err != nil {
		return nil, err
	}
	p.docs = docs
	return docs, nil
}

func (p *DocumentPipeline) Documents() []domain.UploadedDocument { return p.docs }

func (p *DocumentPipeline) documentType(code string) (domain.DocumentType, bool) {
	for _, dt := range p.catalog {
		if dt.Code == code {
			return dt, true
		}
	}
	return domain.DocumentType{}, false
}

func (p *DocumentPipeline) countByType(code string) int {
	n := 0
	for _, d := range p.docs {
		if d.DocumentType == code {
			n++
		}
	}
	return n
}

// SelectType switches the active document type. Switching clears the
// current file selection so files validated against one type's rules
// never ride along to another.
func (p *DocumentPipeline) SelectType(code string) (domain.DocumentType, error) {
	dt, ok := p.documentType(code)
	if !ok {
		return domain.DocumentType{}, fmt.Errorf("%w: jenis dokumen %q tidak ada di katalog", domain.ErrInvalidInput, code)
	}
	if p.selectedType != code {
		p.selection = nil
	}
	p.selectedType = code
	return dt, nil
}

// AddFiles validates each file against the active type and routes it into
// the selection: multi-capable types accumulate (no de-dup), singleton
// types keep exactly one file, the newest replacing any prior pick.
// Invalid files are skipped and reported; valid ones still land.
func (p *DocumentPipeline) AddFiles(files ...domain.FileInfo) error {
	if p.selectedType == "" {
		return fmt.Errorf("%w: pilih jenis dokumen terlebih dahulu", domain.ErrInvalidInput)
	}
	dt, ok := p.documentType(p.selectedType)
	if !ok {
		return fmt.Errorf("%w: jenis dokumen %q tidak ada di katalog", domain.ErrInvalidInput, p.selectedType)
	}

	multi := domain.SupportsMultipleUploads(p.selectedType)
	var rejected []error
	for _, f := range files {
		if err := domain.ValidateFile(f, dt); err != nil {
			rejected = append(rejected, err)
			continue
		}
		if multi {
			p.selection = append(p.selection, f)
		} else {
			p.selection = []domain.FileInfo{f}
		}
	}
	return errors.Join(rejected...)
}

// AddPaths stats each path through the file source before handing the
// results to AddFiles. A path that cannot be statted fails the whole call
// without touching the selection.
func (p *DocumentPipeline) AddPaths(paths ...string) error {
	infos := make([]domain.FileInfo, 0, len(paths))
	for _, path := range paths {
		info, err := p.files.Stat(path)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		infos = append(infos, info)
	}
	return p.AddFiles(infos...)
}

func (p *DocumentPipeline) Selection() []domain.FileInfo { return p.selection }

func (p *DocumentPipeline) ClearSelection() { p.selection = nil }

// RemoveFile drops one file from a multi-file selection by index.
func (p *DocumentPipeline) RemoveFile(index int) {
	if index < 0 || index >= len(p.selection) {
		return
	}
	p.selection = append(p.selection[:index], p.selection[index+1:]...)
}

// Upload dispatches one request per selected file, paced in dispatch order
// and awaited together; files within the batch carry no ordering guarantee
// relative to each other. The batch reports success only when every
// request succeeded; a partial server-side persist is possible and is not
// compensated here. For multi-file batches a non-empty keterangan gets a
// positional " (File N)" suffix so provenance survives the upload.
func (p *DocumentPipeline) Upload(ctx context.Context, keterangan string) ([]domain.UploadedDocument, error) {
	if p.selectedType == "" {
		return nil, fmt.Errorf("%w: pilih jenis dokumen terlebih dahulu", domain.ErrInvalidInput)
	}
	if len(p.selection) == 0 {
		return nil, fmt.Errorf("%w: tidak ada file yang dipilih", domain.ErrInvalidInput)
	}
	dt, ok := p.documentType(p.selectedType)
	if !ok {
		return nil, fmt.Errorf("%w: jenis dokumen %q tidak ada di katalog", domain.ErrInvalidInput, p.selectedType)
	}

	// Achievement certificates get a pre-upload gate once one exists. A
	// pending singleton elsewhere may still be re-uploaded; only verified
	// documents block, via the delete path.
	if domain.SupportsMultipleUploads(dt.Code) && p.countByType(dt.Code) > 0 {
		return nil, fmt.Errorf(
			"%w: sertifikat prestasi sudah diunggah; hapus sertifikat yang ada untuk mengunggah yang baru",
			domain.ErrInvalidInput)
	}

	files := make([]domain.FileInfo, len(p.selection))
	copy(files, p.selection)
	for _, f := range files {
		if err := domain.ValidateFile(f, dt); err != nil {
			return nil, err
		}
	}

	results := make([]*domain.UploadedDocument, len(files))
	g, gctx := errgroup.WithContext(ctx)
	var dispatchErr error
	for i, f := range files {
		i, f := i, f
		// Pacing on the group context stops the dispatch loop as soon as
		// a sibling upload fails.
		if err := p.limiter.Wait(gctx); err != nil {
			dispatchErr = err
			break
		}

		note := keterangan
		if len(files) > 1 && note != "" {
			note = fmt.Sprintf("%s (File %d)", keterangan, i+1)
		}

		body, err := p.files.Open(gctx, f.Path)
		if err != nil {
			dispatchErr = fmt.Errorf("open %s: %w", f.Name, err)
			break
		}

		g.Go(func() error {
			defer body.Close()
			doc, err := p.gateway.UploadDocument(gctx, ports.UploadRequest{
				DocumentTypeCode: dt.Code,
				DocumentTypeID:   dt.ID,
				FileName:         f.Name,
				Keterangan:       note,
				Body:             body,
			})
			if err != nil {
				return fmt.Errorf("upload %s: %w", f.Name, err)
			}
			results[i] = doc
			return nil
		})
	}
	// Requests that finished before a failure may have persisted
	// server-side; the next listing shows the survivors. The group is
	// awaited even when dispatch stopped early so no request outlives
	// this call.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if dispatchErr != nil {
		return nil, dispatchErr
	}

	uploaded := make([]domain.UploadedDocument, 0, len(results))
	for _, doc := range results {
		if doc != nil {
			uploaded = append(uploaded, *doc)
		}
	}
	p.logger.Info("documents_uploaded",
		"document_type", dt.Code,
		"count", len(uploaded),
	)

	p.selection = nil
	if _, err := p.Refresh(ctx); err != nil {
		p.logger.Warn("document_refresh_failed", "error", err)
	}
	return uploaded, nil
}

// Delete removes an uploaded document. Verified documents are refused
// locally; everything else is a hard remove with no undo.
func (p *DocumentPipeline) Delete(ctx context.Context, id int) error {
	for _, d := range p.docs {
		if d.ID == id && !d.Deletable() {
			return fmt.Errorf("%w: dokumen sudah diverifikasi dan tidak dapat dihapus", domain.ErrInvalidInput)
		}
	}
	if err := p.gateway.DeleteDocument(ctx, id); err != nil {
		return err
	}
	p.logger.Info("document_deleted", "document_id", id)

	if _, err := p.Refresh(ctx); err != nil {
		p.logger.Warn("document_refresh_failed", "error", err)
	}
	return nil
}

// Preview classifies a stored document for rendering.
func (p *DocumentPipeline) Preview(doc domain.UploadedDocument) domain.PreviewKind {
	return domain.ClassifyPreview(doc.FileName, doc.FileType)
}
