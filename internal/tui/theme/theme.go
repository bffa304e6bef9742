// Package theme loads the TUI color themes and derives palettes from them.
package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

// DefaultName is used for an empty or unknown theme name.
const DefaultName = "mocha"

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme is one embedded TOML theme. Schedule arcs and rows use the fixed
// category colors; the theme colors everything around them.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`
	BgHighlight string `toml:"bg_highlight"` // panels and cards
	BgSelection string `toml:"bg_selection"` // list cursor
	Fg          string `toml:"fg"`
	FgMuted     string `toml:"fg_muted"` // past schedules, hints
	Accent      string `toml:"accent"`
	Current     string `toml:"current"` // schedule in progress
	Warning     string `toml:"warning"` // overlaps and errors
	Rim         string `toml:"rim"`
	Hand        string `toml:"hand"`

	// Optional modal overrides.
	BaseBg      string `toml:"base_bg"`
	ModalBorder string `toml:"modal_border"`
	TextPrimary string `toml:"text_primary"`
	TextMuted   string `toml:"text_muted"`
	Highlight   string `toml:"highlight"`
}

// Color converts a hex string to a lipgloss color.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load reads the named theme. Unknown names load DefaultName.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !IsAvailable(name) {
		name = DefaultName
	}

	data, err := embeddedThemes.ReadFile(themeFile(name))
	if err != nil {
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	t.Rim = coalesce(t.Rim, t.FgMuted)
	t.Hand = coalesce(t.Hand, t.Fg)
	return &t, nil
}

func themeFile(name string) string {
	return path.Join("embedded", name+".toml")
}

// ModalPalette holds the modal colors after falling back to the base theme.
type ModalPalette struct {
	BaseBg      string
	ModalBorder string
	TextPrimary string
	TextMuted   string
	Highlight   string
}

// Modal resolves the modal overrides against the base colors.
func (t *Theme) Modal() ModalPalette {
	return ModalPalette{
		BaseBg:      coalesce(t.BaseBg, t.BgHighlight, t.Bg),
		ModalBorder: coalesce(t.ModalBorder, t.Accent),
		TextPrimary: coalesce(t.TextPrimary, t.Fg),
		TextMuted:   coalesce(t.TextMuted, t.FgMuted),
		Highlight:   coalesce(t.Highlight, t.BgSelection, t.Accent),
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available lists the embedded theme names, DefaultName first.
func Available() []string {
	entries, _ := fs.Glob(embeddedThemes, "embedded/*.toml")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(path.Base(e), ".toml")
		if name != DefaultName {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return append([]string{DefaultName}, names...)
}

// IsAvailable reports whether name is an embedded theme, ignoring case.
func IsAvailable(name string) bool {
	_, err := fs.Stat(embeddedThemes, themeFile(strings.ToLower(name)))
	return err == nil
}
