package scholarship

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bersekolah/beswanadmin/internal/core/domain"
)

func (c *Client) ListApplications(ctx context.Context, q domain.ListQuery) (*domain.ApplicationPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("per_page", strconv.Itoa(q.PerPage))
	if q.Filter.Search != "" {
		query.Set("search", q.Filter.Search)
	}
	if q.Filter.Status != "" && q.Filter.Status != "all" {
		query.Set("status", q.Filter.Status)
	}
	if q.Filter.Period != "" && q.Filter.Period != "all" {
		query.Set("period", q.Filter.Period)
	}
	if q.Filter.Finalized != "" && q.Filter.Finalized != "all" {
		query.Set("finalized", q.Filter.Finalized)
	}
	if q.Sort.Field != "" {
		query.Set("sort_by", q.Sort.Field)
		if q.Sort.Order != "" {
			query.Set("sort_order", string(q.Sort.Order))
		}
	}

	var apps []domain.Application
	meta, err := c.doJSON(ctx, http.MethodGet, "/admin/applications", query, nil, &apps, "list applications")
	if err != nil {
		return nil, err
	}

	page := &domain.ApplicationPage{Applications: apps}
	if meta != nil {
		page.Meta = *meta
	}
	return page, nil
}

func (c *Client) GetApplication(ctx context.Context, id int) (*domain.ApplicationDetail, error) {
	var detail domain.ApplicationDetail
	_, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/admin/applications/%d", id), nil, nil, &detail, "application detail")
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id int, form domain.StatusForm) (*domain.Application, error) {
	var app domain.Application
	_, err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/admin/applications/%d/status", id), nil, form, &app, "update status")
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) BulkUpdateStatus(ctx context.Context, ids []int, status domain.ApplicationStatus, catatanAdmin string) (int, error) {
	payload := map[string]any{
		"application_ids": ids,
		"status":          string(status),
		"catatan_admin":   catatanAdmin,
	}
	var result *struct {
		UpdatedCount int `json:"updated_count"`
	}
	_, err := c.doJSON(ctx, http.MethodPost, "/admin/applications/bulk-update-status", nil, payload, &result, "bulk update status")
	if err != nil {
		return 0, err
	}
	if result == nil {
		// older servers answer with a bare success envelope and no data
		return len(ids), nil
	}
	return result.UpdatedCount, nil
}

func (c *Client) Statistics(ctx context.Context) (*domain.Statistics, error) {
	var stats domain.Statistics
	_, err := c.doJSON(ctx, http.MethodGet, "/admin/applications/statistics", nil, nil, &stats, "statistics")
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
