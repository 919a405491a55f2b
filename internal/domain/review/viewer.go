package review

import "github.com/moppie/ops-console/internal/domain/media"

// OpenViewer captures the clicked item's position within the filtered list
// so previous/next navigation starts from there.
func (s *Service) OpenViewer(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.filtered {
		if item.ID == id {
			s.viewerIdx = i
			return i, true
		}
	}
	return -1, false
}

// CloseViewer dismisses the viewer.
func (s *Service) CloseViewer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewerIdx = -1
}

// ViewerOpen reports whether the viewer is showing an item.
func (s *Service) ViewerOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewerIdx >= 0
}

// ViewerIndex returns the current position, or -1 when closed.
func (s *Service) ViewerIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewerIdx
}

// ViewerItem returns the item under the viewer.
func (s *Service) ViewerItem() (media.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewerIdx < 0 || s.viewerIdx >= len(s.filtered) {
		return media.Item{}, false
	}
	return s.filtered[s.viewerIdx], true
}

// ViewerNext advances by one item. A no-op at the end of the list; there is
// no wraparound.
func (s *Service) ViewerNext() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewerIdx >= 0 && s.viewerIdx < len(s.filtered)-1 {
		s.viewerIdx++
	}
	return s.viewerIdx
}

// ViewerPrev steps back by one item. A no-op at the start of the list.
func (s *Service) ViewerPrev() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewerIdx > 0 {
		s.viewerIdx--
	}
	return s.viewerIdx
}
