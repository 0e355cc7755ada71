package scholarship

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bersekolah/beswanadmin/internal/core/domain"
)

func (c *Client) LatestMediaSosial(ctx context.Context) (*domain.MediaSosial, error) {
	var media domain.MediaSosial
	_, err := c.doJSON(ctx, http.MethodGet, "/media-sosial/latest", nil, nil, &media, "media sosial latest")
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (c *Client) CreateMediaSosial(ctx context.Context, m domain.MediaSosial) (*domain.MediaSosial, error) {
	var saved domain.MediaSosial
	_, err := c.doJSON(ctx, http.MethodPost, "/admin/media-sosial", nil, m, &saved, "media sosial create")
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) UpdateMediaSosial(ctx context.Context, m domain.MediaSosial) (*domain.MediaSosial, error) {
	if m.ID <= 0 {
		return nil, fmt.Errorf("%w: media sosial id belum ada; gunakan create", domain.ErrInvalidInput)
	}
	var saved domain.MediaSosial
	_, err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/admin/media-sosial/%d", m.ID), nil, m, &saved, "media sosial update")
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
