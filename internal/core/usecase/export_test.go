package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/bersekolah/beswanadmin/internal/core/domain"
	"github.com/bersekolah/beswanadmin/internal/core/ports"
)

type sinkFake struct {
	savedName string
	savedLen  int
}

func (f *sinkFake) Save(_ context.Context, name string, data io.Reader) (string, error) {
	raw, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	f.savedName = name
	f.savedLen = len(raw)
	return "/exports/" + name, nil
}

type inspectorFake struct {
	sheets map[string]int
	err    error
	called bool
}

func (f *inspectorFake) Inspect([]byte) (map[string]int, error) {
	f.called = true
	return f.sheets, f.err
}

func fixedClock() time.Time {
	return time.Date(2025, 8, 29, 10, 0, 0, 0, time.UTC)
}

func TestExportRejectsDataAndDocumentsTogether(t *testing.T) {
	gw := &gatewayFake{}
	uc := NewExportUseCase(gw, &sinkFake{}, nil, nil)

	_, err := uc.Run(context.Background(), []string{TableDataBeswan, TableDokumenBeswan}, ExportExcel, "all")
	if err == nil || !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected mutual-exclusion error, got %v", err)
	}
	if len(gw.calls) != 0 {
		t.Fatalf("no request may be issued, got %v", gw.calls)
	}
}

func TestExportRejectsEmptyTablesAndUnknownFormat(t *testing.T) {
	uc := NewExportUseCase(&gatewayFake{}, &sinkFake{}, nil, nil)
	if _, err := uc.Run(context.Background(), nil, ExportCSV, "all"); err == nil {
		t.Error("empty table selection must fail")
	}
	if _, err := uc.Run(context.Background(), []string{TableDataBeswan}, "tsv", "all"); err == nil {
		t.Error("unknown format must fail")
	}
	if _, err := uc.Run(context.Background(), []string{"users"}, ExportCSV, "all"); err == nil {
		t.Error("unknown table must fail")
	}
}

func TestExportForcesZipForDocuments(t *testing.T) {
	gw := &gatewayFake{
		exportFn: func(req ports.ExportRequest) (*ports.ExportResult, error) {
			if req.Format != ExportZip {
				t.Errorf("format = %q, want zip forced for documents", req.Format)
			}
			return &ports.ExportResult{Data: []byte("PK..."), ContentType: "application/zip"}, nil
		},
	}
	sink := &sinkFake{}
	uc := NewExportUseCase(gw, sink, nil, nil)
	uc.now = fixedClock

	report, err := uc.Run(context.Background(), []string{TableDokumenBeswan}, ExportExcel, "all")
	if err != nil {
		t.Fatal(err)
	}
	if report.Format != ExportZip {
		t.Errorf("report format = %q", report.Format)
	}
	if sink.savedName != "bersekolah_export_2025-08-29.zip" {
		t.Errorf("saved name = %q", sink.savedName)
	}
}

func TestExportExcelIsInspected(t *testing.T) {
	gw := &gatewayFake{
		exportFn: func(req ports.ExportRequest) (*ports.ExportResult, error) {
			return &ports.ExportResult{Data: []byte("xlsx-bytes")}, nil
		},
	}
	inspector := &inspectorFake{sheets: map[string]int{"Data Beswan": 42}}
	uc := NewExportUseCase(gw, &sinkFake{}, inspector, nil)
	uc.now = fixedClock

	report, err := uc.Run(context.Background(), []string{TableDataBeswan}, ExportExcel, "2025")
	if err != nil {
		t.Fatal(err)
	}
	if !inspector.called {
		t.Error("excel blob must be inspected")
	}
	if report.Sheets["Data Beswan"] != 42 {
		t.Errorf("sheets = %v", report.Sheets)
	}

	inspector.err = errors.New("zip: not a valid zip file")
	if _, err := uc.Run(context.Background(), []string{TableDataBeswan}, ExportExcel, "2025"); err == nil {
		t.Fatal("unreadable workbook must fail the run")
	}
}

func TestExportRejectsEmptyBlob(t *testing.T) {
	gw := &gatewayFake{
		exportFn: func(ports.ExportRequest) (*ports.ExportResult, error) {
			return &ports.ExportResult{}, nil
		},
	}
	uc := NewExportUseCase(gw, &sinkFake{}, nil, nil)
	_, err := uc.Run(context.Background(), []string{TableDataBeswan}, ExportJSON, "all")
	if err == nil || !errors.Is(err, domain.ErrServer) {
		t.Fatalf("empty blob must fail with server kind, got %v", err)
	}
}
