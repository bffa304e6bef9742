package tui

import (
	"github.com/javiermolinar/clockplan/internal/tui/input"
	"github.com/javiermolinar/clockplan/internal/tui/view"
)

var promptCommands = []input.PromptCommand{
	{
		Name:        "/plan",
		Description: "Plan schedules from natural language input",
	},
	{
		Name:        "/summary",
		Description: "Summarize today",
	},
	{
		Name:        "/clear",
		Description: "Delete every schedule",
	},
	{
		Name:        "/help",
		Description: "Show available commands",
	},
}

// promptContentWidth is the text width inside the prompt box.
func (m Model) promptContentWidth(innerW int) int {
	frameW, _ := m.styles.PromptFocusedStyle.GetFrameSize()
	return max(innerW-frameW, 1)
}

// promptCursor returns the cursor character if in prompt mode.
func (m Model) promptCursor() string {
	if m.mode == ModePrompt {
		return "_"
	}
	return ""
}

func (m Model) promptLines(contentWidth int) []string {
	p := view.PromptView{
		Input:    m.prompt.Value(),
		Cursor:   m.promptCursor(),
		MaxLines: maxPromptLines,
	}
	if m.mode == ModePrompt {
		for _, cmd := range input.PromptMatchingCommands(m.prompt.Value(), promptCommands) {
			p.Suggestions = append(p.Suggestions, view.Suggestion{Name: cmd.Name, Description: cmd.Description})
		}
	}
	return p.Lines(contentWidth)
}

// maxPromptLines bounds the prompt box height.
const maxPromptLines = 6
