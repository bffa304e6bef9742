package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/clockplan/internal/schedule"
	"github.com/javiermolinar/clockplan/internal/tui/commands"
	"github.com/javiermolinar/clockplan/internal/tui/input"
	"github.com/javiermolinar/clockplan/internal/tui/view"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = m.store.Len() - 1
		m.clampCursor()
	case "c":
		m.focusCurrent()

	// Actions
	case "/", ":":
		return m.openPrompt("/")
	case "p":
		return m.openPrompt("/plan ")
	case "a", "n":
		return m.openForm("", schedule.DefaultInput())
	case "e", "enter":
		s, ok := m.selected()
		if !ok {
			m.statusMsg = "No schedule selected"
			return m, nil
		}
		return m.openForm(s.ID, schedule.InputOf(s))
	case "d", "x":
		s, ok := m.selected()
		if !ok {
			m.statusMsg = "No schedule selected"
			return m, nil
		}
		m.deleteID = s.ID
		return m.openModal(ModalConfirmDelete, "delete")
	case "X":
		if m.store.Len() == 0 {
			m.statusMsg = "Nothing to clear"
			return m, nil
		}
		return m.openModal(ModalConfirmClear, "clear")
	case "t":
		return m.toggleNotification()
	case "s":
		m.statusMsg = "Summarizing..."
		return m, commands.Summary(m.config, m.store, m.atString(), false)
	case "y":
		return m.copyAgenda()
	}
	return m, nil
}

func (m Model) openPrompt(value string) (tea.Model, tea.Cmd) {
	LogModeChange(m.mode, ModePrompt, "prompt")
	m.mode = ModePrompt
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	m.prompt.Focus()
	return m, textinput.Blink
}

func (m Model) openModal(t ModalType, reason string) (tea.Model, tea.Cmd) {
	LogModeChange(m.mode, ModeModal, reason)
	LogModal(t, reason)
	m.mode = ModeModal
	m.modalType = t
	return m, nil
}

func (m Model) closeModal(reason string) Model {
	LogModeChange(m.mode, ModeNormal, reason)
	LogModal(ModalNone, reason)
	m.mode = ModeNormal
	m.modalType = ModalNone
	return m
}

func (m Model) openForm(id string, in schedule.Input) (tea.Model, tea.Cmd) {
	m.form.open(id, in)
	m.pending = nil
	model, _ := m.openModal(ModalScheduleForm, "form")
	return model, textinput.Blink
}

func (m Model) toggleNotification() (tea.Model, tea.Cmd) {
	s, ok := m.selected()
	if !ok {
		m.statusMsg = "No schedule selected"
		return m, nil
	}
	enabled := !s.NotificationEnabled
	updated, err := m.store.Update(context.Background(), s.ID, schedule.Patch{NotificationEnabled: &enabled})
	if err != nil {
		LogError("toggle notification", err)
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return m, nil
	}
	status := "Notifications off: " + updated.Title
	if updated.NotificationEnabled {
		status = "Notifications on: " + updated.Title
	}
	return m, commands.Save(m.store, status)
}

func (m Model) copyAgenda() (tea.Model, tea.Cmd) {
	if m.store.Len() == 0 {
		m.statusMsg = "No schedules to copy"
		return m, nil
	}
	if err := copyToClipboard(view.AgendaText(m.schedules(), m.config.UI.Language)); err != nil {
		m.statusMsg = fmt.Sprintf("Copy failed: %v", err)
		return m, nil
	}
	m.statusMsg = "Copied agenda"
	return m, nil
}

// handlePromptKeys handles keys in prompt mode.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		LogModeChange(m.mode, ModeNormal, "prompt_cancel")
		m.mode = ModeNormal
		m.amending = false
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.prompt.Value())
		LogModeChange(m.mode, ModeNormal, "prompt_submit")
		m.mode = ModeNormal
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m.handlePromptSubmit(value)

	case "tab":
		if completion, ok := input.PromptAutocomplete(m.prompt.Value(), promptCommands); ok {
			m.prompt.SetValue(completion)
			m.prompt.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handlePromptSubmit runs a prompt command. Free text is a plan request,
// or feedback when amending a plan.
func (m Model) handlePromptSubmit(value string) (tea.Model, tea.Cmd) {
	if value == "" {
		m.amending = false
		return m, nil
	}

	if m.amending && m.planner != nil && !input.IsCommand(value) {
		m.amending = false
		m.statusMsg = "Amending plan..."
		return m, commands.AmendPlan(m.planner, value)
	}
	m.amending = false

	if !input.IsCommand(value) {
		return m.startPlan(value)
	}

	typed, args := input.SplitCommand(value)
	name, ok := input.ResolveCommand(typed, promptCommands)
	if !ok {
		m.statusMsg = fmt.Sprintf("Unknown command: %s", typed)
		return m, nil
	}
	switch name {
	case "/plan":
		return m.startPlan(args)
	case "/summary":
		m.statusMsg = "Summarizing..."
		return m, commands.Summary(m.config, m.store, m.atString(), false)
	case "/clear":
		if m.store.Len() == 0 {
			m.statusMsg = "Nothing to clear"
			return m, nil
		}
		return m.openModal(ModalConfirmClear, "clear")
	default:
		m.statusMsg = "Commands: /plan, /summary, /clear, /help"
		return m, nil
	}
}

func (m Model) startPlan(request string) (tea.Model, tea.Cmd) {
	if request == "" {
		m.statusMsg = "Plan requires input"
		return m, nil
	}
	m.planInput = request
	m.statusMsg = "Planning..."
	return m, commands.Plan(request, m.config, m.store, m.now, m.log)
}

// handleModalKeys dispatches to the active modal.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalScheduleForm:
		return m.handleScheduleFormKeys(msg)
	case ModalConfirmOverlap:
		return m.handleConfirmOverlapKeys(msg)
	case ModalConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ModalConfirmClear:
		return m.handleConfirmClearKeys(msg)
	case ModalPlanResult:
		return m.handlePlanResultKeys(msg)
	case ModalSummary:
		return m.handleSummaryKeys(msg)
	case ModalInit:
		return m.handleInitKeys(msg)
	default:
		if msg.String() == "esc" {
			return m.closeModal("esc"), nil
		}
	}
	return m, nil
}

// handleScheduleFormKeys handles keys in the add/edit form.
func (m Model) handleScheduleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form.setFocus(focusTitle)
		m.form.title.Blur()
		return m.closeModal("form_cancel"), nil
	case "tab", "down":
		m.form.next()
		return m, nil
	case "shift+tab", "up":
		m.form.prev()
		return m, nil
	case "enter":
		return m.submitForm()
	}

	if !m.form.editingText() {
		switch msg.String() {
		case "left", "h":
			if m.form.focus == focusCategory {
				m.form.category = prevCategory(m.form.category)
			}
		case "right", "l":
			if m.form.focus == focusCategory {
				m.form.category = m.form.category.Next()
			}
		case " ", "space":
			if m.form.focus == focusNotify {
				m.form.notify = !m.form.notify
			}
		}
		return m, nil
	}

	m.form.err = ""
	return m, m.form.update(msg)
}

func prevCategory(c schedule.Category) schedule.Category {
	all := schedule.Categories()
	for i, info := range all {
		if info.ID == c {
			return all[(i+len(all)-1)%len(all)].ID
		}
	}
	return all[0].ID
}

// submitForm validates the form and either commits it or asks about
// overlaps first.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	in := m.form.input()
	if err := schedule.ValidateInput(in); err != nil {
		m.form.err = formErrorText(err)
		return m, nil
	}

	candidate := in.Apply(schedule.Schedule{ID: m.form.editingID})
	overlaps := schedule.Overlapping(candidate, m.store.Schedules())
	if len(overlaps) > 0 {
		m.pending = &pendingChange{id: m.form.editingID, in: in, overlaps: overlaps}
		return m.openModal(ModalConfirmOverlap, "overlap")
	}
	return m.commit(m.form.editingID, in)
}

// formErrorText maps validation errors to form messages.
func formErrorText(err error) string {
	switch {
	case errors.Is(err, schedule.ErrEmptyTitle):
		return "Please enter a title"
	case errors.Is(err, schedule.ErrTitleTooLong):
		return fmt.Sprintf("Title must be at most %d characters", schedule.MaxTitleLength)
	case errors.Is(err, schedule.ErrInvalidTimeFormat):
		return "Times must be HH:MM"
	case errors.Is(err, schedule.ErrEndBeforeStart):
		return "End time must be after start time"
	default:
		return err.Error()
	}
}

// commit adds or updates a schedule and persists the store.
func (m Model) commit(id string, in schedule.Input) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	var (
		saved  schedule.Schedule
		err    error
		status string
	)
	if id == "" {
		saved, err = m.store.Add(ctx, in)
		status = "Added: " + in.Title
	} else {
		saved, err = m.store.Update(ctx, id, schedule.Patch{
			Title:               &in.Title,
			StartTime:           &in.StartTime,
			EndTime:             &in.EndTime,
			Category:            &in.Category,
			NotificationEnabled: &in.NotificationEnabled,
		})
		status = "Updated: " + in.Title
	}
	if err != nil {
		LogError("commit schedule", err)
		m.form.err = err.Error()
		m.pending = nil
		m.modalType = ModalScheduleForm
		return m, nil
	}

	m.pending = nil
	m = m.closeModal("saved")
	m.refreshCurrent()
	m.selectID(saved.ID)
	return m, commands.Save(m.store, status)
}

// selectID moves the cursor to the schedule with id.
func (m *Model) selectID(id string) {
	for i, s := range m.schedules() {
		if s.ID == id {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

// handleConfirmOverlapKeys handles the overlap warning.
func (m Model) handleConfirmOverlapKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.pending = nil
		m.modalType = ModalScheduleForm
		LogModal(ModalScheduleForm, "overlap_declined")
		return m, nil
	case "enter", "y":
		if m.pending == nil {
			return m.closeModal("overlap_missing"), nil
		}
		return m.commit(m.pending.id, m.pending.in)
	}
	return m, nil
}

// handleConfirmDeleteKeys handles the delete confirmation.
func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.deleteID = ""
		return m.closeModal("delete_cancel"), nil
	case "enter", "y":
		s, err := m.store.Get(m.deleteID)
		if err == nil {
			err = m.store.Delete(context.Background(), m.deleteID)
		}
		m.deleteID = ""
		m = m.closeModal("deleted")
		if err != nil {
			LogError("delete schedule", err)
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		m.clampCursor()
		m.refreshCurrent()
		return m, commands.Save(m.store, "Deleted: "+s.Title)
	}
	return m, nil
}

// handleConfirmClearKeys handles the clear-all confirmation.
func (m Model) handleConfirmClearKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		return m.closeModal("clear_cancel"), nil
	case "enter", "y":
		m.store.ClearAll(context.Background())
		m = m.closeModal("cleared")
		m.cursor = 0
		m.refreshCurrent()
		return m, commands.Save(m.store, "Cleared all schedules")
	}
	return m, nil
}

// handlePlanResultKeys handles keys in plan result modal.
func (m Model) handlePlanResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "c":
		m = m.closeModal("plan_cancel")
		m.planResult = nil
		m.planner = nil
		m.statusMsg = "Planning cancelled"
		return m, nil

	case "enter", "a":
		if m.planResult == nil {
			return m, nil
		}
		if m.planResult.HasValidationErrors() {
			m.statusMsg = "Cannot save: validation errors present"
			return m, nil
		}
		if len(m.planResult.Proposals) == 0 {
			m.statusMsg = "Nothing to add"
			return m, nil
		}
		return m, commands.SavePlan(m.planner, m.planResult)

	case "m":
		m.modalType = ModalNone
		m.amending = true
		m.statusMsg = "What would you like to amend?"
		model, cmd := m.openPrompt("")
		return model, cmd
	}
	return m, nil
}

// handleSummaryKeys handles keys in the day summary modal.
func (m Model) handleSummaryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "i":
		if m.summary != nil && m.summary.Insight != "" {
			return m, nil
		}
		m.statusMsg = "Asking for insight..."
		return m, commands.Summary(m.config, m.store, m.atString(), true)
	case "y":
		return m.copyAgenda()
	case "esc", "enter", "q":
		m = m.closeModal("summary_close")
		m.summary = nil
		m.summaryLines = nil
		return m, nil
	}
	return m, nil
}

// handleInitKeys handles the first-run modal.
func (m Model) handleInitKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, tea.Quit
	case "enter", "y":
		updated, err := m.initializeStorage()
		if err != nil {
			LogError("initialize storage", err)
			m.initError = err.Error()
			return m, nil
		}
		updated.initError = ""
		updated = updated.closeModal("init")
		updated.statusMsg = "Created " + updated.config.StoragePath()
		return updated, nil
	}
	return m, nil
}
