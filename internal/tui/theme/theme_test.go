package theme

import (
	"slices"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		themeName string
		wantName  string
	}{
		{themeName: "mocha", wantName: "mocha"},
		{themeName: "macchiato", wantName: "macchiato"},
		{themeName: "frappe", wantName: "frappe"},
		{themeName: "latte", wantName: "latte"},
		{themeName: "light", wantName: "light"},
		{themeName: " Latte ", wantName: "latte"},
		{themeName: "", wantName: DefaultName},
		{themeName: "nonexistent", wantName: DefaultName},
		{themeName: "../theme", wantName: DefaultName},
	}

	for _, tt := range tests {
		t.Run("name="+tt.themeName, func(t *testing.T) {
			got, err := Load(tt.themeName)
			if err != nil {
				t.Fatalf("Load(%q): %v", tt.themeName, err)
			}
			if got.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.themeName, got.Name, tt.wantName)
			}
		})
	}
}

func TestLoad_ColorsAreHex(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			th, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q): %v", name, err)
			}
			modal := th.Modal()
			colors := map[string]string{
				"Bg":          th.Bg,
				"BgHighlight": th.BgHighlight,
				"BgSelection": th.BgSelection,
				"Fg":          th.Fg,
				"FgMuted":     th.FgMuted,
				"Accent":      th.Accent,
				"Current":     th.Current,
				"Warning":     th.Warning,
				"Rim":         th.Rim,
				"Hand":        th.Hand,
				"modal bg":    modal.BaseBg,
				"modal text":  modal.TextPrimary,
				"modal muted": modal.TextMuted,
			}
			for field, hex := range colors {
				if len(hex) != 7 || hex[0] != '#' {
					t.Errorf("%s = %q, want #rrggbb", field, hex)
				}
			}
		})
	}
}

func TestModalFallsBackToBase(t *testing.T) {
	th := &Theme{Bg: "#000000", BgSelection: "#111111", Fg: "#ffffff", FgMuted: "#888888", Accent: "#ff0000"}
	got := th.Modal()
	want := ModalPalette{
		BaseBg:      "#000000",
		ModalBorder: "#ff0000",
		TextPrimary: "#ffffff",
		TextMuted:   "#888888",
		Highlight:   "#111111",
	}
	if got != want {
		t.Errorf("Modal() = %+v, want %+v", got, want)
	}

	th.Highlight = "#00ff00"
	if got := th.Modal().Highlight; got != "#00ff00" {
		t.Errorf("override Highlight = %q", got)
	}
}

func TestAvailable(t *testing.T) {
	got := Available()
	want := []string{"mocha", "frappe", "latte", "light", "macchiato"}
	if !slices.Equal(got, want) {
		t.Errorf("Available() = %v, want %v", got, want)
	}
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		theme string
		want  bool
	}{
		{theme: "mocha", want: true},
		{theme: "Mocha", want: true},
		{theme: "unknown", want: false},
		{theme: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.theme, func(t *testing.T) {
			if got := IsAvailable(tt.theme); got != tt.want {
				t.Errorf("IsAvailable(%q) = %t, want %t", tt.theme, got, tt.want)
			}
		})
	}
}
