package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func dotted(width, height int) string {
	row := strings.Repeat(".", width)
	return strings.Repeat(row+"\n", height-1) + row
}

func TestOverlayActive(t *testing.T) {
	overlay := NewOverlayModel()
	if overlay.Active() {
		t.Fatal("expected overlay to start inactive")
	}
	overlay.SetActive(true)
	if !overlay.Active() {
		t.Fatal("expected overlay to be active")
	}
}

func TestOverlayRenderInactiveReturnsBase(t *testing.T) {
	overlay := NewOverlayModel()
	base := "alpha\nbeta"
	if got := overlay.Render(base, 10, 2, "content"); got != base {
		t.Fatalf("Render() = %q, want base unchanged", got)
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		name         string
		outerW, outH int
		w, h         int
		want         rect
	}{
		{name: "fits", outerW: 30, outH: 12, w: 10, h: 4, want: rect{x: 10, y: 4, w: 10, h: 4}},
		{name: "odd remainder", outerW: 11, outH: 5, w: 4, h: 2, want: rect{x: 3, y: 1, w: 4, h: 2}},
		{name: "too big", outerW: 8, outH: 3, w: 20, h: 10, want: rect{x: 0, y: 0, w: 8, h: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := center(tt.outerW, tt.outH, tt.w, tt.h); got != tt.want {
				t.Errorf("center() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOverlayRenderPlacesBox(t *testing.T) {
	overlay := NewOverlayModel()
	overlay.SetBackground(lipgloss.Color("#0c0c0c"))
	overlay.SetActive(true)

	width, height := 40, 12
	content := "NEW SCHEDULE"
	got := overlay.Render(dotted(width, height), width, height, content)

	lines := strings.Split(got, "\n")
	if len(lines) != height {
		t.Fatalf("expected %d lines, got %d", height, len(lines))
	}
	if !strings.Contains(ansi.Strip(got), content) {
		t.Fatal("expected rendered content to include the modal text")
	}

	box := center(width, height, overlayMinWidth, overlayMinHeight)
	bg := overlay.bgSeq()
	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Fatalf("line %d width = %d, want %d", i, w, width)
		}
		inBox := i >= box.y && i < box.y+box.h
		if strings.Contains(line, bg) != inBox {
			t.Fatalf("line %d: overlay background present = %v, want %v", i, !inBox, inBox)
		}
		if !inBox && ansi.Strip(line) != strings.Repeat(".", width) {
			t.Fatalf("line %d outside the box changed: %q", i, ansi.Strip(line))
		}
	}
}

func TestOverlayRenderGrowsWithContent(t *testing.T) {
	overlay := NewOverlayModel()
	overlay.SetActive(true)

	content := strings.Repeat("x", 30) + "\n" + strings.Repeat("\n", 6) + "end"
	got := overlay.Render(dotted(50, 20), 50, 20, content)
	plain := ansi.Strip(got)
	if !strings.Contains(plain, strings.Repeat("x", 30)) || !strings.Contains(plain, "end") {
		t.Fatalf("content was cropped:\n%s", plain)
	}
}

func TestOverlayBackdropRestylesScreen(t *testing.T) {
	overlay := NewOverlayModel()
	overlay.SetActive(true)
	overlay.SetBackdrop(lipgloss.NewStyle().Faint(true))

	red := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")).Render(strings.Repeat("#", 30))
	base := strings.Repeat(red+"\n", 9) + red
	got := overlay.Render(base, 30, 10, "hi")

	first := strings.Split(got, "\n")[0]
	if strings.Contains(first, "38;2;255;0;0") {
		t.Fatalf("backdrop kept the original color: %q", first)
	}
	if ansi.Strip(first) != strings.Repeat("#", 30) {
		t.Fatalf("backdrop changed the text: %q", ansi.Strip(first))
	}
}
