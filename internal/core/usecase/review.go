package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/bersekolah/beswanadmin/internal/core/domain"
	"github.com/bersekolah/beswanadmin/internal/core/ports"
)

// ReviewSession drives the application-review workflow: one filtered,
// paginated view of the application set plus a selection of ids for bulk
// actions. State lives in memory and is rehydrated from the API on every
// Load; the server stays the authority for every rule this session also
// checks locally.
type ReviewSession struct {
	gateway ports.ScholarshipGateway
	logger  *slog.Logger

	filter  domain.ListFilter
	sorting domain.Sort
	page    int
	perPage int

	selected map[int]struct{}
	loaded   []domain.Application
	meta     domain.PageMeta
}

func NewReviewSession(gateway ports.ScholarshipGateway, logger *slog.Logger) *ReviewSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewSession{
		gateway:  gateway,
		logger:   logger,
		page:     1,
		perPage:  10,
		selected: make(map[int]struct{}),
	}
}

// Filter setters reset the page to 1 when the value actually changes, so a
// narrowed result set never keeps a stale page index pointing past its
// last page.

func (s *ReviewSession) SetSearch(search string) {
	if s.filter.Search == search {
		return
	}
	s.filter.Search = search
	s.page = 1
}

func (s *ReviewSession) SetStatusFilter(status string) {
	if s.filter.Status == status {
		return
	}
	s.filter.Status = status
	s.page = 1
}

func (s *ReviewSession) SetPeriodFilter(period string) {
	if s.filter.Period == period {
		return
	}
	s.filter.Period = period
	s.page = 1
}

func (s *ReviewSession) SetFinalizedFilter(finalized string) {
	if s.filter.Finalized == finalized {
		return
	}
	s.filter.Finalized = finalized
	s.page = 1
}

func (s *ReviewSession) SetSort(sorting domain.Sort) {
	s.sorting = sorting
}

func (s *ReviewSession) SetPage(page int) error {
	if page < 1 {
		return fmt.Errorf("%w: halaman harus >= 1", domain.ErrInvalidInput)
	}
	s.page = page
	return nil
}

func (s *ReviewSession) SetPerPage(perPage int) error {
	if !domain.ValidPerPage(perPage) {
		return fmt.Errorf("%w: ukuran halaman %d tidak tersedia (pilihan: %v)",
			domain.ErrInvalidInput, perPage, domain.PerPageChoices)
	}
	s.perPage = perPage
	return nil
}

func (s *ReviewSession) Page() int    { return s.page }
func (s *ReviewSession) PerPage() int { return s.perPage }

// Load fetches the current page. Pure read: prior state is replaced only
// on success.
func (s *ReviewSession) Load(ctx context.Context) (*domain.ApplicationPage, error) {
	page, err := s.gateway.ListApplications(ctx, domain.ListQuery{
		Filter:  s.filter,
		Sort:    s.sorting,
		Page:    s.page,
		PerPage: s.perPage,
	})
	if err != nil {
		return nil, err
	}
	s.loaded = page.Applications
	s.meta = page.Meta
	return page, nil
}

func (s *ReviewSession) Applications() []domain.Application { return s.loaded }
func (s *ReviewSession) Meta() domain.PageMeta              { return s.meta }

// Selection is a set of application ids independent of the current page.

func (s *ReviewSession) Select(id int)   { s.selected[id] = struct{}{} }
func (s *ReviewSession) Deselect(id int) { delete(s.selected, id) }

func (s *ReviewSession) ToggleSelect(id int) {
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	s.selected[id] = struct{}{}
}

// SelectAllOnPage adds only the currently loaded page's ids, never the
// full filtered result set.
func (s *ReviewSession) SelectAllOnPage() {
	for _, app := range s.loaded {
		s.selected[app.ID] = struct{}{}
	}
}

func (s *ReviewSession) ClearSelection() {
	s.selected = make(map[int]struct{})
}

func (s *ReviewSession) Selected() []int {
	ids := make([]int, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// UpdateStatus validates locally first: an incomplete lolos_berkas form is
// rejected without a network round trip. On success the full list is
// refreshed (never patched in place) so server-computed fields like
// verification progress and reviewer identity stay accurate.
func (s *ReviewSession) UpdateStatus(ctx context.Context, id int, form domain.StatusForm) (*domain.Application, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	app, err := s.gateway.UpdateStatus(ctx, id, form)
	if err != nil {
		return nil, err
	}
	s.logger.Info("application_status_updated",
		"application_id", id,
		"status", string(form.Status),
	)

	if _, err := s.Load(ctx); err != nil {
		// The mutation itself succeeded; the stale list surfaces its own
		// error on the next manual refresh.
		s.logger.Warn("list_refresh_failed", "error", err)
	}
	return app, nil
}

// BulkUpdate applies one status to every selected application.
// lolos_berkas is gated off before any request: it needs per-application
// interview scheduling. An empty catatan_admin is allowed.
func (s *ReviewSession) BulkUpdate(ctx context.Context, status domain.ApplicationStatus, catatanAdmin string) (int, error) {
	ids := s.Selected()
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: tidak ada aplikasi yang dipilih", domain.ErrInvalidInput)
	}
	if err := domain.ValidateBulkTarget(status); err != nil {
		return 0, err
	}

	updated, err := s.gateway.BulkUpdateStatus(ctx, ids, status, catatanAdmin)
	if err != nil {
		return 0, err
	}
	s.logger.Info("applications_bulk_updated",
		"count", updated,
		"status", string(status),
	)

	s.ClearSelection()
	if _, err := s.Load(ctx); err != nil {
		s.logger.Warn("list_refresh_failed", "error", err)
	}
	return updated, nil
}

func (s *ReviewSession) Detail(ctx context.Context, id int) (*domain.ApplicationDetail, error) {
	return s.gateway.GetApplication(ctx, id)
}

func (s *ReviewSession) Statistics(ctx context.Context) (*domain.Statistics, error) {
	return s.gateway.Statistics(ctx)
}
