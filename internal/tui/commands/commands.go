// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/clockplan/internal/config"
	"github.com/javiermolinar/clockplan/internal/llm"
	"github.com/javiermolinar/clockplan/internal/planner"
	"github.com/javiermolinar/clockplan/internal/store"
	"github.com/javiermolinar/clockplan/internal/summary"
)

// MaxPlanRetries bounds the validation retries of one planning round.
const MaxPlanRetries = 3

// TickMsg is sent once per second to advance the clock.
type TickMsg struct {
	At time.Time
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// PlanStartedMsg is sent when planning starts.
type PlanStartedMsg struct{}

// PlanResultMsg is sent when planning completes.
type PlanResultMsg struct {
	Result  *planner.Result
	Planner *planner.Planner
}

// PlanSavedMsg is sent when plan is saved successfully.
type PlanSavedMsg struct {
	Count int
}

// SummaryMsg is sent when the day summary is ready. InsightErr is set when
// the summary was built but the LLM review failed.
type SummaryMsg struct {
	Summary    *summary.DaySummary
	InsightErr error
}

// Tick schedules the next clock tick.
func Tick(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return TickMsg{At: t}
	})
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// Save persists the store and reports status on success.
func Save(st *store.Store, status string) tea.Cmd {
	return func() tea.Msg {
		if err := st.Save(context.Background()); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving schedules: %w", err)}
		}
		return StatusMsgCmd{Msg: status}
	}
}

// SavePlan creates a command to save the current plan.
func SavePlan(p *planner.Planner, result *planner.Result) tea.Cmd {
	return func() tea.Msg {
		if p == nil || result == nil {
			return ErrMsg{Err: fmt.Errorf("no plan to save")}
		}

		added, err := p.Save(context.Background(), result)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("saving plan: %w", err)}
		}

		return PlanSavedMsg{Count: len(added)}
	}
}

// Plan creates a command that runs the LLM planning.
func Plan(input string, cfg *config.Config, st *store.Store, now func() time.Time, log *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		client, err := llm.NewClient(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.BaseURL)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating LLM client: %w", err)}
		}

		p := planner.New(client, st, planner.Options{
			DayStart: cfg.Day.Start,
			DayEnd:   cfg.Day.End,
			Provider: cfg.LLM.Provider,
			Now:      now,
			Logger:   log,
		})

		result, err := p.PlanWithRetry(context.Background(), input, MaxPlanRetries)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("planning: %w", err)}
		}

		return PlanResultMsg{Result: result, Planner: p}
	}
}

// AmendPlan continues an existing planning session with feedback.
func AmendPlan(p *planner.Planner, feedback string) tea.Cmd {
	return func() tea.Msg {
		result, err := p.ContinuePlanning(context.Background(), feedback, MaxPlanRetries)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("planning: %w", err)}
		}
		return PlanResultMsg{Result: result, Planner: p}
	}
}

// Summary builds the day summary at the given "HH:MM:SS" time, optionally
// asking the LLM for an insight.
func Summary(cfg *config.Config, st *store.Store, at string, insight bool) tea.Cmd {
	return func() tea.Msg {
		opts := summary.Options{DayStart: cfg.Day.Start, DayEnd: cfg.Day.End}
		sum := summary.SummarizeDay(st.Schedules(), at, opts)
		if !insight {
			return SummaryMsg{Summary: sum}
		}

		client, err := llm.NewClient(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.BaseURL)
		if err != nil {
			return SummaryMsg{Summary: sum, InsightErr: fmt.Errorf("creating LLM client: %w", err)}
		}
		if err := sum.AddInsight(context.Background(), client, opts); err != nil {
			return SummaryMsg{Summary: sum, InsightErr: err}
		}
		return SummaryMsg{Summary: sum}
	}
}
