package review

// ToggleSelect flips one id in the selection set. Unknown ids are ignored.
func (s *Service) ToggleSelect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inFiltered(id) {
		return
	}
	if _, ok := s.selection[id]; ok {
		delete(s.selection, id)
	} else {
		s.selection[id] = struct{}{}
	}
}

// ToggleSelectAll flips between an empty selection and the full filtered id
// set. Invoking it twice returns to the original state.
func (s *Service) ToggleSelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.selection) == len(s.filtered) && len(s.filtered) > 0 {
		s.selection = make(map[string]struct{})
		return
	}
	s.selection = make(map[string]struct{}, len(s.filtered))
	for _, item := range s.filtered {
		s.selection[item.ID] = struct{}{}
	}
}

// ClearSelection empties the selection.
func (s *Service) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = make(map[string]struct{})
}

// Selected returns the selected ids in filtered-list order.
func (s *Service) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedIDs()
}

// SelectedCount returns the number of selected items.
func (s *Service) SelectedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selection)
}

// IsSelected reports whether the id is selected.
func (s *Service) IsSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selection[id]
	return ok
}

// selectedIDs must be called with s.mu held.
func (s *Service) selectedIDs() []string {
	ids := make([]string, 0, len(s.selection))
	for _, item := range s.filtered {
		if _, ok := s.selection[item.ID]; ok {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// inFiltered must be called with s.mu held.
func (s *Service) inFiltered(id string) bool {
	for _, item := range s.filtered {
		if item.ID == id {
			return true
		}
	}
	return false
}
