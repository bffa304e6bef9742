package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render modal frames and buttons.
type ModalStyles struct {
	ModalHeaderStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalStyle             lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	ModalBodyStyle         lipgloss.Style
}

// RenderModalFrame stacks title, body and footer with a blank row between
// non-empty sections and wraps them in the modal box.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	sections := []string{styles.ModalHeaderStyle.Render(styles.ModalTitleStyle.Render(title))}
	if body != "" {
		sections = append(sections, body)
	}
	if footer != "" {
		sections = append(sections, styles.ModalFooterStyle.Render(footer))
	}
	return styles.ModalStyle.Render(strings.Join(sections, "\n\n"))
}

// RenderModalButtons renders a row of key hints. The first one is the
// default action and gets the active style.
func RenderModalButtons(styles ModalStyles, labels ...string) string {
	return buttonRow(styles.ModalButtonStyle, styles.ModalButtonActiveStyle, styles.ModalBodyStyle, labels)
}

// RenderModalButtonsCompact is RenderModalButtons with one cell of padding
// for narrow modals.
func RenderModalButtonsCompact(styles ModalStyles, labels ...string) string {
	return buttonRow(styles.ModalButtonStyle.Padding(0, 1), styles.ModalButtonActiveStyle.Padding(0, 1),
		styles.ModalBodyStyle, labels)
}

func buttonRow(normal, active, gap lipgloss.Style, labels []string) string {
	rendered := make([]string, len(labels))
	for i, label := range labels {
		if i == 0 {
			rendered[i] = active.Render(label)
		} else {
			rendered[i] = normal.Render(label)
		}
	}
	return strings.Join(rendered, gap.Render(" "))
}
