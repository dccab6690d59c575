package navigation

// Service moves a cursor over the visible rows and keeps it in the viewport
type Service struct {
	state   *State
	countFn func() int // number of visible rows
}

// NewService creates a new navigation service
func NewService(countFn func() int) *Service {
	return &Service{
		state: &State{
			ViewportHeight: 20, // updated on the first window size
		},
		countFn: countFn,
	}
}

// GetCursor returns current cursor position
func (s *Service) GetCursor() int {
	return s.state.Cursor
}

// GetViewportOffset returns current viewport offset
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns current viewport height
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight updates the number of rows the list may use
func (s *Service) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.state.ViewportHeight = height
	s.ensureVisible()
}

// Navigate moves the cursor and reports whether it changed
func (s *Service) Navigate(direction Direction) bool {
	old := s.state.Cursor
	s.refresh()

	switch direction {
	case DirectionUp:
		s.state.Cursor--
	case DirectionDown:
		s.state.Cursor++
	case DirectionPageUp:
		s.state.Cursor -= s.state.ViewportHeight - 1
	case DirectionPageDown:
		s.state.Cursor += s.state.ViewportHeight - 1
	case DirectionHome:
		s.state.Cursor = 0
	case DirectionEnd:
		s.state.Cursor = s.state.MaxIndex
	}

	s.state.Cursor = s.clampIndex(s.state.Cursor)
	s.ensureVisible()
	return old != s.state.Cursor
}

// MoveToIndex moves cursor to a specific row
func (s *Service) MoveToIndex(index int) {
	s.refresh()
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()
}

// Clamp pulls the cursor back inside the rows after the list shrinks
func (s *Service) Clamp() {
	s.MoveToIndex(s.state.Cursor)
}

func (s *Service) refresh() {
	if s.countFn != nil {
		s.state.MaxIndex = s.countFn() - 1
	}
}

func (s *Service) clampIndex(index int) int {
	if index > s.state.MaxIndex {
		index = s.state.MaxIndex
	}
	if index < 0 {
		return 0
	}
	return index
}

func (s *Service) ensureVisible() {
	if s.state.Cursor < s.state.ViewportOffset {
		s.state.ViewportOffset = s.state.Cursor
	} else if s.state.Cursor >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = s.state.Cursor - s.state.ViewportHeight + 1
	}

	if limit := s.state.MaxIndex - s.state.ViewportHeight + 1; s.state.ViewportOffset > limit {
		s.state.ViewportOffset = limit
	}
	if s.state.ViewportOffset < 0 {
		s.state.ViewportOffset = 0
	}
}
