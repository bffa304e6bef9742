package tui

import (
	"fmt"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/schedule"
	"github.com/javiermolinar/clockplan/internal/tui/view"
)

// renderModal renders the current modal.
func (m Model) renderModal() string {
	switch m.modalType {
	case ModalScheduleForm:
		return m.renderScheduleFormModal()
	case ModalConfirmOverlap:
		return m.renderConfirmOverlapModal()
	case ModalConfirmDelete:
		return m.renderConfirmDeleteModal()
	case ModalConfirmClear:
		return m.renderConfirmClearModal()
	case ModalPlanResult:
		return m.renderPlanResultModal()
	case ModalSummary:
		return m.renderSummaryModal()
	case ModalInit:
		return m.renderInitModal()
	default:
		return ""
	}
}

func (m Model) modalStyles() view.ModalStyles {
	return view.ModalStyles{
		ModalHeaderStyle:       m.styles.ModalHeaderStyle,
		ModalTitleStyle:        m.styles.ModalTitleStyle,
		ModalFooterStyle:       m.styles.ModalFooterStyle,
		ModalStyle:             m.styles.ModalStyle,
		ModalButtonStyle:       m.styles.ModalButtonStyle,
		ModalButtonActiveStyle: m.styles.ModalButtonActiveStyle,
		ModalBodyStyle:         m.styles.ModalBodyStyle,
	}
}

func (m Model) confirmStyles() view.ConfirmStyles {
	return view.ConfirmStyles{
		BodyStyle: m.styles.ModalBodyStyle,
		MetaStyle: m.styles.ModalMetaStyle,
	}
}

func confirmItem(s schedule.Schedule) view.ConfirmItem {
	return view.ConfirmItem{
		Title:     s.Title,
		TimeRange: fmt.Sprintf("%s-%s", s.StartTime, s.EndTime),
	}
}

// renderScheduleFormModal renders the add/edit form.
func (m Model) renderScheduleFormModal() string {
	title := "New Schedule"
	if m.form.editingID != "" {
		title = "Edit Schedule"
	}
	body := view.RenderScheduleFormBody(m.buildScheduleFormModel(), view.ScheduleFormStyles{
		TagStyle:          m.styles.ModalTagStyle,
		BodyStyle:         m.styles.ModalBodyStyle,
		SectionTitleStyle: m.styles.ModalSectionTitleStyle,
		OptionActive:      m.styles.OptionActiveStyle,
		OptionInactive:    m.styles.OptionInactiveStyle,
		HintStyle:         m.styles.ModalHintStyle,
		ErrorStyle:        m.styles.ModalErrorStyle,
	})
	footer := view.ScheduleFormFooter(m.modalStyles())
	return view.RenderModalFrame(title, body, footer, m.modalStyles())
}

// renderConfirmOverlapModal warns that the pending change overlaps others.
func (m Model) renderConfirmOverlapModal() string {
	if m.pending == nil {
		return ""
	}
	items := make([]view.ConfirmItem, 0, len(m.pending.overlaps))
	for _, s := range m.pending.overlaps {
		items = append(items, confirmItem(s))
	}
	question := fmt.Sprintf("%s-%s overlaps %d schedule(s). Save anyway?",
		m.pending.in.StartTime, m.pending.in.EndTime, len(items))
	body := view.RenderConfirmBody(view.ConfirmModel{Items: items, Question: question}, m.confirmStyles())
	footer := view.ConfirmFooter(m.modalStyles())
	return view.RenderModalFrame("Overlapping Schedule", body, footer, m.modalStyles())
}

// renderConfirmDeleteModal renders the delete confirmation modal.
func (m Model) renderConfirmDeleteModal() string {
	s, err := m.store.Get(m.deleteID)
	if err != nil {
		return ""
	}
	model := view.ConfirmModel{
		Items:    []view.ConfirmItem{confirmItem(s)},
		Question: "Delete this schedule?",
	}
	body := view.RenderConfirmBody(model, m.confirmStyles())
	footer := view.ConfirmFooter(m.modalStyles())
	return view.RenderModalFrame("Delete Schedule", body, footer, m.modalStyles())
}

// renderConfirmClearModal renders the clear-all confirmation modal.
func (m Model) renderConfirmClearModal() string {
	model := view.ConfirmModel{
		Question: fmt.Sprintf("Delete all %d schedules? This cannot be undone.", m.store.Len()),
	}
	body := view.RenderConfirmBody(model, m.confirmStyles())
	footer := view.ConfirmFooter(m.modalStyles())
	return view.RenderModalFrame("Clear All", body, footer, m.modalStyles())
}

// planResultViewModel converts the planner result for rendering.
func (m Model) planResultViewModel() (view.PlanResultModel, bool) {
	r := m.planResult
	if r == nil {
		return view.PlanResultModel{}, false
	}

	model := view.PlanResultModel{
		IntroMessage:   fmt.Sprintf("Request: %s", m.planInput),
		Warnings:       append(append([]string(nil), r.Warnings...), r.Suggestions...),
		NoProposals:    len(r.Proposals) == 0,
		NoTasksMessage: "No schedules proposed.",
		Summary: fmt.Sprintf("%d schedules · %s planned · %s free before",
			len(r.Proposals), clock.FormatDuration(r.TotalMinutes()), clock.FormatDuration(r.FreeMinutes)),
		AmendHint: "Press m and describe what to change.",
	}
	for _, e := range r.ValidationErrors {
		model.Issues = append(model.Issues, e.String())
	}
	for _, in := range r.Proposals {
		model.Lines = append(model.Lines, fmt.Sprintf("  %s %s-%s %s",
			in.Category.Icon(), in.StartTime, in.EndTime, in.Title))
	}
	return model, true
}

// renderPlanResultModal renders the LLM planning result modal.
func (m Model) renderPlanResultModal() string {
	model, ok := m.planResultViewModel()
	if !ok {
		return ""
	}
	body := view.RenderPlanResultBody(model, view.PlanResultStyles{
		MetaStyle:         m.styles.ModalMetaStyle,
		SectionTitleStyle: m.styles.ModalSectionTitleStyle,
		BodyStyle:         m.styles.ModalBodyStyle,
	})
	footer := view.PlanResultFooter(m.planResult.HasValidationErrors(), m.modalStyles())
	return view.RenderModalFrame("LLM Draft", body, footer, m.modalStyles())
}

// renderSummaryModal renders the day summary.
func (m Model) renderSummaryModal() string {
	if m.summary == nil {
		return ""
	}
	width := view.ModalContentWidth(m.styles.ModalStyle, 56)
	body := view.RenderSummaryBody(m.summaryLines, view.SummaryStyles{
		BodyStyle:         m.styles.ModalBodyStyle,
		MetaStyle:         m.styles.ModalMetaStyle,
		SectionTitleStyle: m.styles.ModalSectionTitleStyle,
		WarningStyle:      m.styles.ModalErrorStyle,
	}, width)
	footer := view.SummaryFooter(m.summary.Insight != "", m.modalStyles())
	return view.RenderModalFrame("Today at "+clock.MinutesToTime(clock.TimeToMinutes(m.summary.At)), body, footer, m.modalStyles())
}

// renderInitModal renders the startup initialization modal.
func (m Model) renderInitModal() string {
	model := view.InitModalModel{
		ConfigPath:    m.initState.ConfigPath,
		DataPath:      m.initState.DataPath,
		ConfigMissing: m.initState.ConfigMissing,
		DataMissing:   m.initState.DataMissing,
		ErrorMessage:  m.initError,
	}
	body := view.RenderInitBody(model, view.InitModalStyles{
		BodyStyle:  m.styles.ModalBodyStyle,
		LabelStyle: m.styles.ModalLabelStyle,
		HintStyle:  m.styles.ModalErrorStyle,
	})
	footer := view.InitFooter(m.modalStyles())
	return view.RenderModalFrame("Initialize clockplan", body, footer, m.modalStyles())
}
