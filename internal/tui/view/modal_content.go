// Package view provides rendering helpers for the TUI.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmItem is one schedule shown in a confirmation modal.
type ConfirmItem struct {
	Title     string
	TimeRange string
}

// ConfirmModel contains the fields needed to render a confirmation body.
type ConfirmModel struct {
	Items    []ConfirmItem
	Question string
}

// ConfirmStyles groups styles for confirmation bodies.
type ConfirmStyles struct {
	BodyStyle lipgloss.Style
	MetaStyle lipgloss.Style
}

// RenderConfirmBody renders the listed schedules followed by the question.
func RenderConfirmBody(model ConfirmModel, styles ConfirmStyles) string {
	var body strings.Builder

	for _, item := range model.Items {
		body.WriteString(styles.BodyStyle.Render(fmt.Sprintf("%q", item.Title)) + " ")
		body.WriteString(styles.MetaStyle.Render(item.TimeRange) + "\n")
	}
	if len(model.Items) > 0 {
		body.WriteString("\n")
	}
	body.WriteString(styles.BodyStyle.Render(model.Question))

	return body.String()
}

// InitModalModel contains the fields needed to render the init modal.
type InitModalModel struct {
	ConfigPath    string
	DataPath      string
	ConfigMissing bool
	DataMissing   bool
	ErrorMessage  string
}

// InitModalStyles groups styles for the init modal body.
type InitModalStyles struct {
	BodyStyle  lipgloss.Style
	LabelStyle lipgloss.Style
	HintStyle  lipgloss.Style
}

// RenderInitBody renders the files that will be created on first start.
func RenderInitBody(model InitModalModel, styles InitModalStyles) string {
	var body strings.Builder

	body.WriteString(styles.BodyStyle.Render("clockplan needs to create:") + "\n\n")
	if model.ConfigMissing {
		body.WriteString(styles.LabelStyle.Render("Config") + styles.BodyStyle.Render(model.ConfigPath) + "\n")
	}
	if model.DataMissing {
		body.WriteString(styles.LabelStyle.Render("Schedules") + styles.BodyStyle.Render(model.DataPath) + "\n")
	}
	if model.ErrorMessage != "" {
		body.WriteString("\n" + styles.HintStyle.Render("Error: "+model.ErrorMessage) + "\n")
	}

	return body.String()
}
