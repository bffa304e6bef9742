package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/clockplan/internal/schedule"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Current     lipgloss.Color
	Warning     lipgloss.Color
	Rim         lipgloss.Color
	Hand        lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnWarning lipgloss.Color
	TextOnCurrent lipgloss.Color

	Categories map[schedule.Category]CategoryColors

	Modal ModalColors
}

// CategoryColors are the shades a category is drawn with on this theme.
type CategoryColors struct {
	Fg         lipgloss.Color // arc and chip color
	Bg         lipgloss.Color // row background
	BgAlt      lipgloss.Color // selected row background
	PastBg     lipgloss.Color // rows that already ended
	TextOn     lipgloss.Color // text drawn on Fg
	TextOnBase lipgloss.Color // text drawn on Bg
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg          lipgloss.Color
	Border      lipgloss.AdaptiveColor
	Text        lipgloss.AdaptiveColor
	Muted       lipgloss.AdaptiveColor
	Highlight   lipgloss.AdaptiveColor
	Panel       lipgloss.AdaptiveColor
	ReverseText lipgloss.AdaptiveColor
	Backdrop    lipgloss.Color
}

// NewPalette derives a Palette from t. A nil theme uses DefaultName.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}
	light := isLightTheme(t.Bg)
	modal := t.Modal()
	behind := coalesce(t.BgSelection, t.BgHighlight, t.Bg)

	p := &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Current:     lipgloss.Color(t.Current),
		Warning:     lipgloss.Color(t.Warning),
		Rim:         lipgloss.Color(coalesce(t.Rim, t.FgMuted)),
		Hand:        lipgloss.Color(coalesce(t.Hand, t.Fg)),

		TextOnAccent:  lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),
		TextOnCurrent: lipgloss.Color(chooseTextColor(t.Current, t.Bg, t.Fg)),

		Categories: make(map[schedule.Category]CategoryColors),

		Modal: ModalColors{
			Bg:        lipgloss.Color(modal.BaseBg),
			Border:    adaptiveColor(modal.ModalBorder),
			Text:      adaptiveColor(modal.TextPrimary),
			Muted:     adaptiveColor(modal.TextMuted),
			Highlight: adaptiveColor(modal.Highlight),
			Panel:     adaptiveColor(behind),
			// inverted text for the active button
			ReverseText: lipgloss.AdaptiveColor{Dark: modal.BaseBg, Light: modal.TextPrimary},
			Backdrop:    lipgloss.Color(behind),
		},
	}
	for _, info := range schedule.Categories() {
		p.Categories[info.ID] = categoryColors(info.Color, t, light)
	}
	return p
}

// Category returns the shades for c, falling back to the default color.
func (p *Palette) Category(c schedule.Category) CategoryColors {
	if cc, ok := p.Categories[c]; ok {
		return cc
	}
	return CategoryColors{
		Fg:         lipgloss.Color(schedule.DefaultColor),
		Bg:         p.BgHighlight,
		BgAlt:      p.BgSelection,
		PastBg:     p.Bg,
		TextOn:     p.Fg,
		TextOnBase: p.Fg,
	}
}

func categoryColors(hex string, t *Theme, isLight bool) CategoryColors {
	bg := categoryBaseBg(hex, t.Bg, isLight)
	return CategoryColors{
		Fg:         lipgloss.Color(hex),
		Bg:         lipgloss.Color(bg),
		BgAlt:      lipgloss.Color(alternateShade(bg, isLight)),
		PastBg:     lipgloss.Color(categoryMutedBg(hex, t.Bg, isLight)),
		TextOn:     lipgloss.Color(chooseTextColor(hex, t.Bg, t.Fg)),
		TextOnBase: lipgloss.Color(chooseTextColor(bg, t.Bg, t.Fg)),
	}
}

func categoryBaseBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.75)
	}
	return darkenColor(accent)
}

func categoryMutedBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.88)
	}
	return muteColor(accent)
}

func adaptiveColor(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: hex, Light: hex}
}
