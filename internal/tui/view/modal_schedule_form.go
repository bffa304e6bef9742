// Package view provides rendering helpers for the TUI.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ScheduleFormModel contains the fields needed to render the schedule form body.
type ScheduleFormModel struct {
	TimeRange       string
	DurationLabel   string
	TitleValue      string
	StartValue      string
	EndValue        string
	TitleStyle      lipgloss.Style
	StartStyle      lipgloss.Style
	EndStyle        lipgloss.Style
	CategoryOptions []string
	ActiveCategory  int
	CategoryFocused bool
	NotifyOn        bool
	NotifyFocused   bool
	Error           string
}

// ScheduleFormStyles groups styles for the schedule form body.
type ScheduleFormStyles struct {
	TagStyle          lipgloss.Style
	BodyStyle         lipgloss.Style
	SectionTitleStyle lipgloss.Style
	OptionActive      lipgloss.Style
	OptionInactive    lipgloss.Style
	HintStyle         lipgloss.Style
	ErrorStyle        lipgloss.Style
}

// RenderScheduleFormBody renders the modal body for the schedule form.
func RenderScheduleFormBody(model ScheduleFormModel, styles ScheduleFormStyles) string {
	var body strings.Builder
	sep := styles.BodyStyle.Render(" ")

	timeTag := styles.TagStyle.Render(model.TimeRange)
	durationTag := styles.TagStyle.Render(model.DurationLabel)
	body.WriteString(timeTag + sep + durationTag + "\n\n")

	body.WriteString(styles.SectionTitleStyle.Render("TITLE") + "\n")
	body.WriteString(model.TitleStyle.Render(model.TitleValue) + "\n\n")

	body.WriteString(styles.SectionTitleStyle.Render("START") + sep + styles.SectionTitleStyle.Render("END") + "\n")
	body.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		model.StartStyle.Render(model.StartValue),
		sep,
		model.EndStyle.Render(model.EndValue),
	) + "\n\n")

	body.WriteString(styles.SectionTitleStyle.Render("CATEGORY") + "\n")
	parts := make([]string, 0, len(model.CategoryOptions))
	for i, label := range model.CategoryOptions {
		if i == model.ActiveCategory {
			parts = append(parts, styles.OptionActive.Render(label))
		} else {
			parts = append(parts, styles.OptionInactive.Render(label))
		}
	}
	body.WriteString(strings.Join(parts, sep))
	if model.CategoryFocused {
		body.WriteString(sep + styles.HintStyle.Render("Use left/right"))
	}
	body.WriteString("\n\n")

	body.WriteString(styles.SectionTitleStyle.Render("NOTIFY") + "\n")
	on, off := styles.OptionInactive.Render("On"), styles.OptionActive.Render("Off")
	if model.NotifyOn {
		on, off = styles.OptionActive.Render("On"), styles.OptionInactive.Render("Off")
	}
	body.WriteString(on + sep + off)
	if model.NotifyFocused {
		body.WriteString(sep + styles.HintStyle.Render("Space to toggle"))
	}
	body.WriteString("\n")

	if model.Error != "" {
		body.WriteString("\n" + styles.ErrorStyle.Render(model.Error) + "\n")
	}

	return body.String()
}
