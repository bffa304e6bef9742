package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/clockplan/internal/tui/commands"
	"github.com/javiermolinar/clockplan/internal/tui/view"
)

const (
	statusTTL = 3 * time.Second
	errorTTL  = 5 * time.Second
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case commands.TickMsg:
		m.at = m.now()
		prev := m.currentID
		m.refreshCurrent()
		if prev != m.currentID {
			LogCurrentChange(m.atString(), prev, m.currentID)
		}
		return m, commands.Tick(tickInterval)

	case commands.ErrMsg:
		m.err = msg.Err
		LogError("command", msg.Err)
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = m.now().Add(errorTTL)
		return m, commands.ClearStatusAfter(errorTTL)

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = m.now().Add(statusTTL)
		return m, commands.ClearStatusAfter(statusTTL)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil

	case commands.PlanStartedMsg:
		m.statusMsg = "Planning..."
		return m, nil

	case commands.PlanResultMsg:
		m.planner = msg.Planner
		m.planResult = msg.Result
		m.statusMsg = ""
		return m.openModal(ModalPlanResult, "plan_result")

	case commands.PlanSavedMsg:
		m.planResult = nil
		m.planner = nil
		m = m.closeModal("plan_saved")
		m.refreshCurrent()
		m.clampCursor()
		m.statusMsg = fmt.Sprintf("Added %d schedules", msg.Count)
		m.statusTime = m.now().Add(statusTTL)
		return m, commands.ClearStatusAfter(statusTTL)

	case commands.SummaryMsg:
		m.summary = msg.Summary
		m.summaryLines = view.BuildSummaryLines(msg.Summary, m.config.UI.Language)
		m.statusMsg = ""
		if msg.InsightErr != nil {
			LogError("insight", msg.InsightErr)
			m.statusMsg = fmt.Sprintf("Insight failed: %v", msg.InsightErr)
			m.statusTime = m.now().Add(errorTTL)
		}
		if m.modalType == ModalSummary {
			return m, nil
		}
		return m.openModal(ModalSummary, "summary")
	}

	// Handle prompt input when in prompt mode
	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	// Cursor blink for the form inputs
	if m.mode == ModeModal && m.modalType == ModalScheduleForm {
		return m, m.form.update(msg)
	}

	return m, nil
}
