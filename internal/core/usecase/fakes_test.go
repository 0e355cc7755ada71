package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/bersekolah/beswanadmin/internal/core/domain"
	"github.com/bersekolah/beswanadmin/internal/core/ports"
)

var errNotImplemented = errors.New("not implemented")

// gatewayFake records every call in order so tests can assert both what
// was dispatched and what never was. Upload requests arrive concurrently,
// hence the lock.
type gatewayFake struct {
	mu    sync.Mutex
	calls []string

	listFn      func(q domain.ListQuery) (*domain.ApplicationPage, error)
	detailFn    func(id int) (*domain.ApplicationDetail, error)
	updateFn    func(id int, form domain.StatusForm) (*domain.Application, error)
	bulkFn      func(ids []int, status domain.ApplicationStatus, catatan string) (int, error)
	statsFn     func() (*domain.Statistics, error)
	typesFn     func(category string) ([]domain.DocumentType, error)
	myDocsFn    func(category string) ([]domain.UploadedDocument, error)
	uploadFn    func(req ports.UploadRequest) (*domain.UploadedDocument, error)
	deleteFn    func(id int) error
	exportFn    func(req ports.ExportRequest) (*ports.ExportResult, error)
	mediaGetFn  func() (*domain.MediaSosial, error)
	mediaSaveFn func(m domain.MediaSosial) (*domain.MediaSosial, error)
}

func (f *gatewayFake) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
}

func (f *gatewayFake) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *gatewayFake) callCount(op string) int {
	n := 0
	for _, c := range f.recorded() {
		if c == op {
			n++
		}
	}
	return n
}

func (f *gatewayFake) ListApplications(_ context.Context, q domain.ListQuery) (*domain.ApplicationPage, error) {
	f.record("list")
	if f.listFn == nil {
		return &domain.ApplicationPage{}, nil
	}
	return f.listFn(q)
}

func (f *gatewayFake) GetApplication(_ context.Context, id int) (*domain.ApplicationDetail, error) {
	f.record("detail")
	if f.detailFn == nil {
		return nil, errNotImplemented
	}
	return f.detailFn(id)
}

func (f *gatewayFake) UpdateStatus(_ context.Context, id int, form domain.StatusForm) (*domain.Application, error) {
	f.record("update")
	if f.updateFn == nil {
		return nil, errNotImplemented
	}
	return f.updateFn(id, form)
}

func (f *gatewayFake) BulkUpdateStatus(_ context.Context, ids []int, status domain.ApplicationStatus, catatan string) (int, error) {
	f.record("bulk")
	if f.bulkFn == nil {
		return 0, errNotImplemented
	}
	return f.bulkFn(ids, status, catatan)
}

func (f *gatewayFake) Statistics(context.Context) (*domain.Statistics, error) {
	f.record("statistics")
	if f.statsFn == nil {
		return nil, errNotImplemented
	}
	return f.statsFn()
}

func (f *gatewayFake) DocumentTypes(_ context.Context, category string) ([]domain.DocumentType, error) {
	f.record("types")
	if f.typesFn == nil {
		return nil, errNotImplemented
	}
	return f.typesFn(category)
}

func (f *gatewayFake) MyDocuments(_ context.Context, category string) ([]domain.UploadedDocument, error) {
	f.record("mydocs")
	if f.myDocsFn == nil {
		return nil, nil
	}
	return f.myDocsFn(category)
}

func (f *gatewayFake) UploadDocument(_ context.Context, req ports.UploadRequest) (*domain.UploadedDocument, error) {
	f.record("upload")
	if f.uploadFn == nil {
		return nil, errNotImplemented
	}
	return f.uploadFn(req)
}

func (f *gatewayFake) DeleteDocument(_ context.Context, id int) error {
	f.record("delete")
	if f.deleteFn == nil {
		return errNotImplemented
	}
	return f.deleteFn(id)
}

func (f *gatewayFake) Export(_ context.Context, req ports.ExportRequest) (*ports.ExportResult, error) {
	f.record("export")
	if f.exportFn == nil {
		return nil, errNotImplemented
	}
	return f.exportFn(req)
}

func (f *gatewayFake) LatestMediaSosial(context.Context) (*domain.MediaSosial, error) {
	f.record("media_get")
	if f.mediaGetFn == nil {
		return nil, errNotImplemented
	}
	return f.mediaGetFn()
}

func (f *gatewayFake) CreateMediaSosial(_ context.Context, m domain.MediaSosial) (*domain.MediaSosial, error) {
	f.record("media_create")
	if f.mediaSaveFn == nil {
		return nil, errNotImplemented
	}
	return f.mediaSaveFn(m)
}

func (f *gatewayFake) UpdateMediaSosial(_ context.Context, m domain.MediaSosial) (*domain.MediaSosial, error) {
	f.record("media_update")
	if f.mediaSaveFn == nil {
		return nil, errNotImplemented
	}
	return f.mediaSaveFn(m)
}
