package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/dial"
	"github.com/javiermolinar/clockplan/internal/schedule"
	"github.com/javiermolinar/clockplan/internal/tui/view"
)

// Layout limits.
const (
	minDialRadius  = 4
	maxDialRadius  = 14
	minRightWidth  = 32
	footerBaseH    = 2 // status + help
	headerH        = 1
	panelGap       = 1
	minInnerWidth  = 40
	minInnerHeight = 12
)

// layout holds the sizes of the main sections for the current terminal.
type layout struct {
	InnerW  int
	InnerH  int
	BodyH   int
	FooterH int
	DialW   int // 0 hides the dial panel
	Radius  int
	RightW  int
}

// View renders the TUI using a boxed, parent-controlled layout.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	state := view.ViewState{
		Width:   m.width,
		Height:  m.height,
		Base:    m.renderAppContent(),
		Overlay: m.overlay,
	}
	if m.mode == ModeModal && m.modalType != ModalNone {
		state.Modal = m.renderModal()
		m.overlay.SetActive(true)
		m.overlay.SetBackground(m.styles.ModalBackdropColor)
		m.overlay.SetBackdrop(m.styles.BackdropStyle)
		state.Overlay = m.overlay
	}
	return state
}

// computeLayout splits the terminal into header, body and footer, and the
// body into the dial and the schedule panel.
func (m Model) computeLayout() layout {
	appW, appH := m.styles.AppStyle.GetFrameSize()
	l := layout{
		InnerW: m.width - appW,
		InnerH: m.height - appH,
	}

	l.FooterH = footerBaseH
	if m.mode == ModePrompt {
		borderH := m.styles.PromptStyle.GetVerticalFrameSize()
		l.FooterH += len(m.promptLines(m.promptContentWidth(l.InnerW))) + borderH
	}
	l.BodyH = l.InnerH - headerH - l.FooterH

	panelFrameW, panelFrameH := m.styles.PanelStyle.GetFrameSize()
	byHeight := (l.BodyH - panelFrameH - 1) / 2
	byWidth := (l.InnerW - minRightWidth - panelGap - panelFrameW - 1) / 4
	l.Radius = min(byHeight, byWidth, maxDialRadius)
	if l.Radius >= minDialRadius {
		l.DialW = 4*l.Radius + 1 + panelFrameW
		l.RightW = l.InnerW - l.DialW - panelGap
	} else {
		l.Radius = 0
		l.RightW = l.InnerW
	}
	return l
}

func (m Model) renderAppContent() string {
	l := m.computeLayout()
	if l.InnerW < minInnerWidth || l.InnerH < minInnerHeight || l.BodyH <= 0 {
		return "Terminal too small"
	}

	header := m.renderHeader(l.InnerW)

	right := m.renderSchedulePanel(l.RightW, l.BodyH)
	body := right
	if l.DialW > 0 {
		gap := m.placeBox(panelGap, l.BodyH, lipgloss.Top, "")
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderDialPanel(l), gap, right)
	}

	footer := view.RenderFooterModel(m.footerModel(l))

	content := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	app := m.styles.AppStyle.Render(content)
	return view.PadLinesWithBackground(app, m.width, m.height, m.styles.colorBg)
}

// placeBox is a helper to render content in an explicit lipgloss box.
func (m Model) placeBox(w, h int, vAlign lipgloss.Position, content string) string {
	return view.PlaceBox(w, h, vAlign, content, m.styles.colorBg)
}

func (m Model) renderHeader(width int) string {
	title := m.styles.TitleStyle.Render("◷ clockplan")
	clockText := m.styles.ClockStyle.Render(m.at.Format("Mon Jan 2  15:04:05"))
	gap := width - lipgloss.Width(title) - lipgloss.Width(clockText)
	if gap < 1 {
		return m.placeBox(width, 1, lipgloss.Top, title)
	}
	fill := lipgloss.NewStyle().Background(m.styles.colorBg).Render(strings.Repeat(" ", gap))
	return title + fill + clockText
}

// renderDialPanel draws the 24 hour dial with the current hands.
func (m Model) renderDialPanel(l layout) string {
	grid := dial.Rasterize(m.store.Schedules(), dial.RasterOptions{
		Radius:    l.Radius,
		Now:       m.at,
		CurrentID: m.currentID,
	})
	dialText := grid.Render(m.styles.DialStyles())

	frameW, frameH := m.styles.PanelStyle.GetFrameSize()
	contentW, contentH := l.DialW-frameW, l.BodyH-frameH
	placed := lipgloss.Place(contentW, contentH, lipgloss.Center, lipgloss.Center, dialText,
		lipgloss.WithWhitespaceBackground(m.styles.colorBg))
	return m.panel(l.DialW, l.BodyH, placed)
}

// panel wraps content in the bordered panel style at an outer size.
func (m Model) panel(w, h int, content string) string {
	style := m.styles.PanelStyle
	return style.
		Width(w - style.GetHorizontalBorderSize()).
		Height(h - style.GetVerticalBorderSize()).
		Render(content)
}

// renderSchedulePanel draws the current card and the schedule list.
func (m Model) renderSchedulePanel(w, h int) string {
	frameW, frameH := m.styles.PanelStyle.GetFrameSize()
	contentW, contentH := w-frameW, h-frameH
	if contentW <= 0 || contentH <= 0 {
		return ""
	}

	card := view.RenderCard(m.cardModel(contentW), m.cardStyles())
	listTitle := m.placeBox(contentW, 1, lipgloss.Top,
		m.styles.PanelTitleStyle.Render(fmt.Sprintf("TODAY · %d", m.store.Len())))

	listH := contentH - lipgloss.Height(card) - 2
	parts := []string{card, m.placeBox(contentW, 1, lipgloss.Top, ""), listTitle}
	if listH > 0 {
		parts = append(parts, view.RenderList(m.listModel(contentW, listH), view.ListStyles{
			EmptyStyle: m.styles.EmptyStyle,
			Bg:         m.styles.colorBg,
		}))
	}
	return m.panel(w, h, lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) cardStyles() view.CardStyles {
	styles := view.CardStyles{
		CardStyle:          m.styles.CardStyle,
		TitleStyle:         m.styles.CardTitleStyle,
		MetaStyle:          m.styles.CardMetaStyle,
		ChipStyle:          m.styles.ChipStyle,
		CategoryChipStyle:  m.styles.ChipStyle,
		NowBadgeStyle:      m.styles.NowBadgeStyle,
		ProgressFullStyle:  m.styles.ProgressFullStyle,
		ProgressEmptyStyle: m.styles.ProgressEmptyStyle,
	}
	if cur, ok := schedule.Find(m.store.Schedules(), m.currentID); ok {
		styles.CategoryChipStyle = m.styles.CategoryChipStyle(cur.Category)
	}
	return styles
}

func (m Model) cardModel(width int) view.CardModel {
	lang := m.config.UI.Language
	at := m.atString()
	all := m.store.Schedules()

	model := view.CardModel{
		Width:     width,
		FreeLabel: view.FreeTimeLabel(lang),
	}
	if cur, ok := schedule.Find(all, m.currentID); ok {
		model.HasCurrent = true
		model.Title = cur.Title
		model.StartTime = cur.StartTime
		model.EndTime = cur.EndTime
		model.CategoryLabel = cur.Category.Icon() + " " + cur.Category.Name(lang)
		model.Progress = schedule.Progress(cur, at)
		model.Remaining = clock.FormatDuration(schedule.Remaining(cur, at))
	}
	if next, ok := schedule.Find(all, m.nextID); ok {
		wait := next.StartMinutes() - clock.TimeToMinutes(at)
		model.NextLine = fmt.Sprintf("Next: %s %s %s · in %s",
			next.StartTime, next.Category.Icon(), next.Title, clock.FormatDuration(wait))
	}
	return model
}

func (m Model) listModel(width, height int) view.ListModel {
	return view.ListModel{
		Width:    width,
		Height:   height,
		Rows:     m.listRows(),
		Selected: m.cursor,
		Empty:    "No schedules yet. Press a to add one or / to plan.",
	}
}

// listRows formats the schedules in time order.
func (m Model) listRows() []view.ListRow {
	all := m.store.Schedules()
	nowMin := clock.TimeToMinutes(m.atString())
	sorted := m.schedules()

	rows := make([]view.ListRow, 0, len(sorted))
	for i, s := range sorted {
		marker := " "
		if s.ID == m.currentID {
			marker = "▶"
		}
		flags := ""
		if s.NotificationEnabled {
			flags += " 🔔"
		}
		if schedule.HasOverlap(s, all) {
			flags += " ⚠"
		}
		text := fmt.Sprintf("%s %s-%s %s %s · %s%s",
			marker, s.StartTime, s.EndTime, s.Category.Icon(), s.Title,
			clock.FormatDuration(s.Duration()), flags)
		past := s.EndMinutes() <= nowMin
		rows = append(rows, view.ListRow{
			Text:  text,
			Style: m.styles.RowStyleFor(s.Category, i == m.cursor, past),
		})
	}
	return rows
}

func (m Model) footerModel(l layout) view.FooterModel {
	return view.FooterModel{
		InnerW:           l.InnerW,
		FooterH:          l.FooterH,
		StatusText:       m.statusText(),
		HelpText:         m.renderHelp(),
		PromptLines:      m.promptLines(m.promptContentWidth(l.InnerW)),
		PromptFocus:      m.mode == ModePrompt,
		ShowPrompt:       m.mode == ModePrompt,
		StatusStyle:      m.styles.StatusStyle,
		HelpStyle:        m.styles.HelpStyle,
		PromptStyle:      m.styles.PromptStyle,
		PromptFocusStyle: m.styles.PromptFocusedStyle,
		VAlign:           lipgloss.Bottom,
		Bg:               m.styles.colorBg,
	}
}

// statusText returns the status message, or a short day overview.
func (m Model) statusText() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	if m.amending {
		return "Describe what to change in the plan"
	}
	return fmt.Sprintf("%d schedules", m.store.Len())
}

// renderHelp renders the help bar for the current mode.
func (m Model) renderHelp() string {
	switch m.mode {
	case ModePrompt:
		return "enter submit · tab complete · esc cancel"
	case ModeModal:
		return ""
	default:
		return "j/k move · a add · e edit · d delete · t notify · s summary · y copy · / command · q quit"
	}
}
