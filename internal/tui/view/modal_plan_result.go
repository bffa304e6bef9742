package view

import "strings"

// PlanResultModel is the draft returned by the planner, ready to print.
type PlanResultModel struct {
	IntroMessage   string
	Issues         []string // validation errors, block applying
	Warnings       []string
	Lines          []string
	NoProposals    bool
	NoTasksMessage string
	Summary        string
	AmendHint      string
}

// PlanResultStyles groups styles for the plan result body.
type PlanResultStyles struct {
	MetaStyle         stringRenderer
	SectionTitleStyle stringRenderer
	BodyStyle         stringRenderer
}

type stringRenderer interface {
	Render(...string) string
}

// RenderPlanResultBody renders the draft: request, issues, warnings, the
// proposed schedules and how to amend.
func RenderPlanResultBody(model PlanResultModel, styles PlanResultStyles) string {
	var rows []string
	section := func(title string, lines ...string) {
		rows = append(rows, styles.SectionTitleStyle.Render(title))
		rows = append(rows, lines...)
		rows = append(rows, "")
	}
	bullets := func(items []string) []string {
		out := make([]string, len(items))
		for i, item := range items {
			out[i] = styles.BodyStyle.Render("- " + item)
		}
		return out
	}

	rows = append(rows, styles.MetaStyle.Render(model.IntroMessage), "")
	if len(model.Issues) > 0 {
		section("ISSUES", bullets(model.Issues)...)
	}
	if len(model.Warnings) > 0 {
		section("WARNINGS", bullets(model.Warnings)...)
	}

	draft := []string{styles.MetaStyle.Render(model.NoTasksMessage)}
	if !model.NoProposals {
		draft = draft[:0]
		for _, line := range model.Lines {
			draft = append(draft, styles.BodyStyle.Render(line))
		}
	}
	section("DRAFT SCHEDULE", draft...)

	rows = append(rows, styles.MetaStyle.Render(model.Summary), "")
	rows = append(rows, styles.SectionTitleStyle.Render("AMEND"), styles.MetaStyle.Render(model.AmendHint))
	return strings.Join(rows, "\n") + "\n"
}
