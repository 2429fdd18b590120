package cli

import "github.com/alexanderramin/gantt/internal/gateway"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Terminal dimensions
	Width  int
	Height int

	// Notice is the transient message shown in the status bar until the
	// next key or mouse press.
	Notice *gateway.Notice
}

// Notify sets the transient notice.
func (s *SharedState) Notify(n gateway.Notice) {
	s.Notice = &n
}
