// Package view provides rendering helpers for the TUI.
package view

// ScheduleFormFooter renders the footer for the schedule form modal.
func ScheduleFormFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[Enter] Save", "[Tab] Next", "[Esc] Cancel")
}

// ConfirmFooter renders the footer for confirmation modals.
func ConfirmFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[y/Enter] Confirm", "[n/Esc] Cancel")
}

// PlanResultFooter renders the footer for the plan result modal.
func PlanResultFooter(hasValidationErrors bool, styles ModalStyles) string {
	if hasValidationErrors {
		return RenderModalButtons(styles, "[m] Amend", "[Esc/c] Cancel")
	}
	return RenderModalButtons(styles, "[Enter/a] Apply", "[m] Amend", "[Esc/c] Cancel")
}

// SummaryFooter renders the footer for the day summary modal.
func SummaryFooter(hasInsight bool, styles ModalStyles) string {
	if hasInsight {
		return RenderModalButtonsCompact(styles, "[y] Copy", "[Esc] Close")
	}
	return RenderModalButtonsCompact(styles, "[i] Insight", "[y] Copy", "[Esc] Close")
}

// InitFooter renders the footer for the init modal.
func InitFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[Enter] Allow", "[Esc] Quit")
}
