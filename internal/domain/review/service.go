package review

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/moppie/ops-console/internal/domain/media"
	"github.com/moppie/ops-console/internal/domain/notify"
)

// ViewMode selects which listing endpoint feeds the page.
type ViewMode string

const (
	// ViewAdmin shows all media, optionally narrowed to one job.
	ViewAdmin ViewMode = "admin"
	// ViewEmployee shows only the authenticated employee's uploads.
	ViewEmployee ViewMode = "employee"
)

// MediaAPI is the slice of the backend client the review workflow needs.
type MediaAPI interface {
	ListMedia(ctx context.Context, pageSize int) ([]media.Item, error)
	ListJobMedia(ctx context.Context, jobID string, pageSize int) ([]media.Item, error)
	ListMyMedia(ctx context.Context) ([]media.Item, error)
	UpdateMediaStatus(ctx context.Context, id string, status media.Status) error
	BulkUpdateMediaStatus(ctx context.Context, ids []string, status media.Status) error
	SetMediaImportance(ctx context.Context, id string, important bool) error
}

// Notifier raises user-visible notifications.
type Notifier interface {
	Success(message string) notify.Notification
	Error(message string) notify.Notification
}

// Service drives the media review page: filtering, selection, bulk actions
// and viewer navigation over a cached copy of the backend listing. Local
// state is only mutated after the backend confirms a change.
type Service struct {
	api      MediaAPI
	notifier Notifier
	pageSize int

	mu         sync.Mutex
	mode       ViewMode
	filter     media.Filter
	items      []media.Item
	filtered   []media.Item
	selection  map[string]struct{}
	generation uint64
	loading    bool
	viewerIdx  int
}

// NewService creates the review workflow in admin mode with no filter.
func NewService(client MediaAPI, notifier Notifier, pageSize int) *Service {
	return &Service{
		api:       client,
		notifier:  notifier,
		pageSize:  pageSize,
		mode:      ViewAdmin,
		selection: make(map[string]struct{}),
		viewerIdx: -1,
	}
}

// Reload fetches the listing for the current view mode and filter. Each
// reload gets a generation number; a response that arrives after a newer
// reload has started is discarded so the latest request always wins.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	mode := s.mode
	jobID := s.filter.JobID
	s.loading = true
	s.mu.Unlock()

	items, err := s.fetch(ctx, mode, jobID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		log.Debug().Uint64("generation", gen).Msg("discarding stale media reload")
		return nil
	}
	s.loading = false

	if err != nil {
		s.notifier.Error("Failed to load media")
		return err
	}

	s.items = items
	s.filtered = s.filter.Apply(items)
	s.selection = make(map[string]struct{})
	s.viewerIdx = -1
	return nil
}

func (s *Service) fetch(ctx context.Context, mode ViewMode, jobID string) ([]media.Item, error) {
	switch {
	case mode == ViewEmployee:
		return s.api.ListMyMedia(ctx)
	case jobID != "":
		return s.api.ListJobMedia(ctx, jobID, s.pageSize)
	default:
		return s.api.ListMedia(ctx, s.pageSize)
	}
}

// SetViewMode switches between admin and employee listings and reloads.
func (s *Service) SetViewMode(ctx context.Context, mode ViewMode) error {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	return s.Reload(ctx)
}

// SetFilter replaces the filter and reloads.
func (s *Service) SetFilter(ctx context.Context, filter media.Filter) error {
	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()
	return s.Reload(ctx)
}

// UpdateStatus changes one item's review status. The local copy is only
// mutated after the backend confirms; a failed call leaves state unchanged
// and raises exactly one error notification.
func (s *Service) UpdateStatus(ctx context.Context, id string, status media.Status) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid media status %q", status)
	}

	if err := s.api.UpdateMediaStatus(ctx, id, status); err != nil {
		s.notifier.Error("Failed to update media status")
		return err
	}

	s.mu.Lock()
	s.mutateItem(id, func(item *media.Item) { item.Status = status })
	s.mu.Unlock()

	s.notifier.Success(fmt.Sprintf("Media marked as %s", status))
	return nil
}

// ToggleImportance flips one item's importance flag, confirming with the
// backend first.
func (s *Service) ToggleImportance(ctx context.Context, id string) error {
	s.mu.Lock()
	item, ok := s.findItem(id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown media item %q", id)
	}

	next := !item.IsImportant
	if err := s.api.SetMediaImportance(ctx, id, next); err != nil {
		s.notifier.Error("Failed to update importance")
		return err
	}

	s.mu.Lock()
	s.mutateItem(id, func(item *media.Item) { item.IsImportant = next })
	s.mu.Unlock()
	return nil
}

// BulkUpdateStatus applies one status to every selected item in a single
// call. Requires a non-empty selection. On success all matching items are
// updated locally and the selection is cleared; on failure both are left
// untouched.
func (s *Service) BulkUpdateStatus(ctx context.Context, status media.Status) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid media status %q", status)
	}

	s.mu.Lock()
	ids := s.selectedIDs()
	s.mu.Unlock()
	if len(ids) == 0 {
		return fmt.Errorf("no media selected")
	}

	if err := s.api.BulkUpdateMediaStatus(ctx, ids, status); err != nil {
		s.notifier.Error("Bulk update failed")
		return err
	}

	s.mu.Lock()
	for _, id := range ids {
		s.mutateItem(id, func(item *media.Item) { item.Status = status })
	}
	s.selection = make(map[string]struct{})
	s.mu.Unlock()

	s.notifier.Success(fmt.Sprintf("%d items marked as %s", len(ids), status))
	return nil
}

// Items returns a copy of the unfiltered listing.
func (s *Service) Items() []media.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]media.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Filtered returns a copy of the filtered view.
func (s *Service) Filtered() []media.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]media.Item, len(s.filtered))
	copy(out, s.filtered)
	return out
}

// Loading reports whether a reload is in flight.
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Mode returns the active view mode.
func (s *Service) Mode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Filter returns the active filter.
func (s *Service) Filter() media.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// mutateItem updates the item in both the master and the filtered list,
// keeping the two in sync. Must be called with s.mu held.
func (s *Service) mutateItem(id string, mutate func(*media.Item)) {
	for i := range s.items {
		if s.items[i].ID == id {
			mutate(&s.items[i])
			break
		}
	}
	for i := range s.filtered {
		if s.filtered[i].ID == id {
			mutate(&s.filtered[i])
			break
		}
	}
}

// findItem must be called with s.mu held.
func (s *Service) findItem(id string) (media.Item, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return media.Item{}, false
}
