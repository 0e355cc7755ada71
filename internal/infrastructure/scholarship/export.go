package scholarship

import (
	"context"
	"net/url"
	"strings"

	"github.com/bersekolah/beswanadmin/internal/core/ports"
)

// acceptHeaders maps export formats to the Accept negotiation the backend
// expects; octet-stream is a fallback some deployments answer with.
var acceptHeaders = map[string]string{
	"excel": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet, application/vnd.ms-excel, application/octet-stream",
	"csv":   "text/csv, application/octet-stream",
	"json":  "application/json",
	"zip":   "application/zip, application/octet-stream",
}

func (c *Client) Export(ctx context.Context, req ports.ExportRequest) (*ports.ExportResult, error) {
	query := url.Values{}
	query.Set("tables", strings.Join(req.Tables, ","))
	query.Set("format", req.Format)
	if req.DateRange != "" {
		query.Set("dateRange", req.DateRange)
	}

	accept := acceptHeaders[req.Format]
	if accept == "" {
		accept = "application/octet-stream"
	}

	data, contentType, err := c.doBinary(ctx, "/export", query, accept, "export")
	if err != nil {
		return nil, err
	}
	return &ports.ExportResult{Data: data, ContentType: contentType}, nil
}
