package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bersekolah/beswanadmin/internal/core/domain"
	"github.com/bersekolah/beswanadmin/internal/core/ports"
)

// Export formats accepted by the export endpoint.
const (
	ExportExcel = "excel"
	ExportCSV   = "csv"
	ExportJSON  = "json"
	ExportZip   = "zip"
)

// Exportable tables. Beswan data and beswan documents need different
// container formats and are never exported in one request.
const (
	TableDataBeswan    = "data_beswan"
	TableDokumenBeswan = "dokumen_beswan"
)

var exportExtensions = map[string]string{
	ExportExcel: ".xlsx",
	ExportCSV:   ".csv",
	ExportJSON:  ".json",
	ExportZip:   ".zip",
}

// WorkbookInspector summarizes a downloaded spreadsheet so the caller can
// confirm the blob is a readable workbook, not an error page.
type WorkbookInspector interface {
	Inspect(data []byte) (map[string]int, error)
}

// ExportReport describes one completed export run.
type ExportReport struct {
	Path   string
	Format string
	Bytes  int
	// Sheets maps sheet name to row count; populated for excel exports
	// when an inspector is wired.
	Sheets map[string]int
}

type ExportUseCase struct {
	gateway   ports.ScholarshipGateway
	sink      ports.ExportSink
	inspector WorkbookInspector
	logger    *slog.Logger
	now       func() time.Time
}

func NewExportUseCase(gateway ports.ScholarshipGateway, sink ports.ExportSink, inspector WorkbookInspector, logger *slog.Logger) *ExportUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportUseCase{
		gateway:   gateway,
		sink:      sink,
		inspector: inspector,
		logger:    logger,
		now:       time.Now,
	}
}

// normalizeRequest enforces the table/format coupling: documents force the
// zip container, and data+documents in one request is refused.
func normalizeRequest(tables []string, format, dateRange string) (ports.ExportRequest, error) {
	if len(tables) == 0 {
		return ports.ExportRequest{}, fmt.Errorf("%w: pilih minimal satu tabel untuk diekspor", domain.ErrInvalidInput)
	}
	if _, ok := exportExtensions[format]; !ok {
		return ports.ExportRequest{}, fmt.Errorf("%w: format ekspor %q tidak dikenal", domain.ErrInvalidInput, format)
	}

	hasData, hasDocs := false, false
	for _, table := range tables {
		switch table {
		case TableDataBeswan:
			hasData = true
		case TableDokumenBeswan:
			hasDocs = true
		default:
			return ports.ExportRequest{}, fmt.Errorf("%w: tabel %q tidak dikenal", domain.ErrInvalidInput, table)
		}
	}
	if hasData && hasDocs {
		return ports.ExportRequest{}, fmt.Errorf(
			"%w: data beswan dan dokumen beswan tidak bisa dipilih bersamaan karena memerlukan format yang berbeda",
			domain.ErrInvalidInput)
	}
	if hasDocs {
		format = ExportZip
	}

	return ports.ExportRequest{Tables: tables, Format: format, DateRange: dateRange}, nil
}

// Run downloads one export blob and persists it as
// bersekolah_export_<date><ext>. Excel blobs are opened and summarized
// when an inspector is available.
func (uc *ExportUseCase) Run(ctx context.Context, tables []string, format, dateRange string) (*ExportReport, error) {
	req, err := normalizeRequest(tables, format, dateRange)
	if err != nil {
		return nil, err
	}

	result, err := uc.gateway.Export(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(result.Data) == 0 {
		return nil, fmt.Errorf("%w: export mengembalikan berkas kosong", domain.ErrServer)
	}

	name := fmt.Sprintf("bersekolah_export_%s%s", uc.now().Format("2006-01-02"), exportExtensions[req.Format])
	path, err := uc.sink.Save(ctx, name, bytes.NewReader(result.Data))
	if err != nil {
		return nil, fmt.Errorf("save export: %w", err)
	}

	report := &ExportReport{Path: path, Format: req.Format, Bytes: len(result.Data)}
	if req.Format == ExportExcel && uc.inspector != nil {
		sheets, err := uc.inspector.Inspect(result.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: berkas excel hasil ekspor tidak dapat dibuka: %w", domain.ErrServer, err)
		}
		report.Sheets = sheets
	}

	uc.logger.Info("export_completed",
		"format", report.Format,
		"bytes", report.Bytes,
		"path", report.Path,
	)
	return report, nil
}
