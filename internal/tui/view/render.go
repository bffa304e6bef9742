// Package view provides view composition helpers for the TUI.
package view

// OverlayRenderer draws modal content over the rendered screen.
type OverlayRenderer interface {
	Render(base string, width, height int, content string) string
}

// ViewState is one frame: the screen and, when a modal is open, its content.
type ViewState struct {
	Width   int
	Height  int
	Base    string
	Modal   string // empty when no modal is open
	Overlay OverlayRenderer
}

// Render composes the final frame. Before the first window size arrives
// there is nothing to lay out.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		return "Loading..."
	}
	if state.Modal == "" || state.Overlay == nil {
		return state.Base
	}
	return state.Overlay.Render(state.Base, state.Width, state.Height, state.Modal)
}
