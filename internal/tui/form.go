package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/schedule"
	"github.com/javiermolinar/clockplan/internal/tui/view"
)

// Form focus order.
const (
	focusTitle = iota
	focusStart
	focusEnd
	focusCategory
	focusNotify
	formFields
)

// scheduleForm is the add/edit modal state.
type scheduleForm struct {
	editingID string // empty when adding
	title     textinput.Model
	start     textinput.Model
	end       textinput.Model
	category  schedule.Category
	notify    bool
	focus     int
	err       string
}

// pendingChange is a form submission waiting for overlap confirmation.
type pendingChange struct {
	id       string // empty for a new schedule
	in       schedule.Input
	overlaps []schedule.Schedule
}

func newFormInput(styles *Styles, placeholder string, limit, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = width
	ti.Prompt = ""
	ti.PlaceholderStyle = styles.ModalPlaceholderStyle
	ti.TextStyle = styles.ModalInputTextStyle
	ti.PromptStyle = styles.ModalInputTextStyle
	ti.Cursor.Style = styles.ModalInputCursorStyle
	ti.Cursor.TextStyle = styles.ModalInputTextStyle
	return ti
}

func newScheduleForm(styles *Styles) scheduleForm {
	return scheduleForm{
		title: newFormInput(styles, "Schedule title", schedule.MaxTitleLength, 36),
		start: newFormInput(styles, "HH:MM", 5, 5),
		end:   newFormInput(styles, "HH:MM", 5, 5),
	}
}

// open resets the form to in. id is empty for a new schedule.
func (f *scheduleForm) open(id string, in schedule.Input) {
	f.editingID = id
	f.title.SetValue(in.Title)
	f.start.SetValue(in.StartTime)
	f.end.SetValue(in.EndTime)
	f.category = in.Category
	f.notify = in.NotificationEnabled
	f.err = ""
	f.setFocus(focusTitle)
}

// input returns the normalized form values.
func (f scheduleForm) input() schedule.Input {
	return schedule.Input{
		Title:               f.title.Value(),
		StartTime:           strings.TrimSpace(f.start.Value()),
		EndTime:             strings.TrimSpace(f.end.Value()),
		Category:            f.category,
		NotificationEnabled: f.notify,
	}.Normalize()
}

func (f *scheduleForm) setFocus(focus int) {
	f.focus = (focus + formFields) % formFields
	f.title.Blur()
	f.start.Blur()
	f.end.Blur()
	switch f.focus {
	case focusTitle:
		f.title.Focus()
	case focusStart:
		f.start.Focus()
	case focusEnd:
		f.end.Focus()
	}
}

func (f *scheduleForm) next() { f.setFocus(f.focus + 1) }
func (f *scheduleForm) prev() { f.setFocus(f.focus - 1) }

// update forwards a key to the focused text input.
func (f *scheduleForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case focusTitle:
		f.title, cmd = f.title.Update(msg)
	case focusStart:
		f.start, cmd = f.start.Update(msg)
	case focusEnd:
		f.end, cmd = f.end.Update(msg)
	}
	return cmd
}

// editingText reports whether keys should go to a text input.
func (f scheduleForm) editingText() bool {
	return f.focus == focusTitle || f.focus == focusStart || f.focus == focusEnd
}

func (m Model) buildScheduleFormModel() view.ScheduleFormModel {
	f := m.form
	in := f.input()

	timeRange := "--:-- - --:--"
	duration := "-"
	if clock.IsValidTime(in.StartTime) && clock.IsValidTime(in.EndTime) {
		timeRange = fmt.Sprintf("%s - %s", in.StartTime, in.EndTime)
		if clock.IsEndTimeValid(in.StartTime, in.EndTime) {
			duration = clock.FormatDuration(clock.DurationMinutes(in.StartTime, in.EndTime))
		}
	}

	lang := m.config.UI.Language
	options := make([]string, 0, len(schedule.Categories()))
	active := 0
	for i, info := range schedule.Categories() {
		options = append(options, info.Icon+" "+info.ID.Name(lang))
		if info.ID == f.category {
			active = i
		}
	}

	return view.ScheduleFormModel{
		TimeRange:       timeRange,
		DurationLabel:   duration,
		TitleValue:      f.title.View(),
		StartValue:      f.start.View(),
		EndValue:        f.end.View(),
		TitleStyle:      m.formInputStyle(focusTitle, 40),
		StartStyle:      m.formInputStyle(focusStart, 9),
		EndStyle:        m.formInputStyle(focusEnd, 9),
		CategoryOptions: options,
		ActiveCategory:  active,
		CategoryFocused: f.focus == focusCategory,
		NotifyOn:        f.notify,
		NotifyFocused:   f.focus == focusNotify,
		Error:           f.err,
	}
}

func (m Model) formInputStyle(field, width int) lipgloss.Style {
	if m.form.focus == field {
		return m.styles.ModalInputFocusedStyle.Width(width)
	}
	return m.styles.ModalInputStyle.Width(width)
}
