// Package planner turns natural language requests into validated schedules.
// It coordinates the LLM, the free-slot scheduler and the store, and is used
// by both the CLI and the TUI.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/clockplan/internal/llm"
	"github.com/javiermolinar/clockplan/internal/schedule"
	"github.com/javiermolinar/clockplan/internal/scheduler"
	"github.com/javiermolinar/clockplan/internal/store"
)

// ErrNoSession is returned by ContinuePlanning before any plan was made.
var ErrNoSession = errors.New("no active planning session")

// ErrInvalidPlan is returned by Save when the result still has validation errors.
var ErrInvalidPlan = errors.New("cannot save: plan has validation errors")

// Options configures a Planner.
type Options struct {
	DayStart string // "HH:MM"
	DayEnd   string // "HH:MM"
	Provider string
	Now      func() time.Time
	Logger   *zap.Logger
}

// Planner orchestrates schedule planning for today.
type Planner struct {
	client    llm.Client
	store     *store.Store
	scheduler *scheduler.Scheduler
	provider  string
	now       func() time.Time
	log       *zap.Logger

	// Conversation state for interactive planning
	messages     []llm.Message
	lastResponse *llm.PlanResponse
}

// Result contains the outcome of a planning round.
type Result struct {
	Proposals   []schedule.Input
	Warnings    []string
	Suggestions []string

	// Populated when retries are exhausted.
	ValidationErrors []ValidationError

	// Context for display
	At          string
	FreeSlots   []scheduler.Slot
	FreeMinutes int
}

// HasValidationErrors returns true if there are unresolved validation errors.
func (r *Result) HasValidationErrors() bool {
	return len(r.ValidationErrors) > 0
}

// TotalMinutes returns the time covered by the proposals.
func (r *Result) TotalMinutes() int {
	total := 0
	for _, in := range r.Proposals {
		total += in.Apply(schedule.Schedule{}).Duration()
	}
	return total
}

// New creates a Planner. st must already be loaded.
func New(client llm.Client, st *store.Store, opts Options) *Planner {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Planner{
		client:    client,
		store:     st,
		scheduler: scheduler.New(opts.DayStart, opts.DayEnd),
		provider:  opts.Provider,
		now:       opts.Now,
		log:       opts.Logger,
	}
}

// PlanWithRetry asks the LLM for schedules matching input, validates them
// and feeds the errors back for up to maxRetries more attempts. When
// retries run out the result carries ValidationErrors.
func (p *Planner) PlanWithRetry(ctx context.Context, input string, maxRetries int) (*Result, error) {
	now := p.now()
	existing := p.store.Schedules()
	free := p.scheduler.FreeSlots(existing)

	slotStrings := make([]string, 0, len(free))
	for _, s := range free {
		slotStrings = append(slotStrings, s.Start+"-"+s.End)
	}

	p.messages = llm.NewPlanner(p.client).BuildInitialMessages(llm.PlanRequest{
		Input:            input,
		Now:              now,
		DayStart:         p.scheduler.DayStart(),
		DayEnd:           p.scheduler.DayEnd(),
		Existing:         existing,
		FreeSlots:        slotStrings,
		UseCompactPrompt: llm.IsLocal(p.provider),
	})
	p.messages = append(p.messages, llm.Message{Role: llm.RoleUser, Content: input})
	p.lastResponse = nil

	return p.run(ctx, maxRetries)
}

// ContinuePlanning adds the user's feedback to the conversation and replans.
func (p *Planner) ContinuePlanning(ctx context.Context, feedback string, maxRetries int) (*Result, error) {
	if len(p.messages) == 0 {
		return nil, ErrNoSession
	}
	p.appendAssistant()
	p.messages = append(p.messages, llm.Message{Role: llm.RoleUser, Content: feedback})
	return p.run(ctx, maxRetries)
}

func (p *Planner) run(ctx context.Context, maxRetries int) (*Result, error) {
	llmPlanner := llm.NewPlanner(p.client)
	at := p.now().Format("15:04")
	existing := p.store.Schedules()

	var last ValidationResult
	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, err := llmPlanner.PlanWithMessages(ctx, p.messages)
		if err != nil {
			return nil, fmt.Errorf("LLM planning (attempt %d): %w", attempt+1, err)
		}
		p.lastResponse = resp

		last = NewValidator(at, existing).Validate(resp.Inputs())
		if last.Valid {
			return p.buildResult(resp, at, existing, nil), nil
		}

		p.log.Debug("plan rejected",
			zap.Int("attempt", attempt+1),
			zap.Int("errors", len(last.Errors)))

		if attempt < maxRetries {
			p.appendAssistant()
			p.messages = append(p.messages, llm.Message{
				Role:    llm.RoleUser,
				Content: last.FormatErrors(),
			})
		}
	}

	return p.buildResult(p.lastResponse, at, existing, last.Errors), nil
}

func (p *Planner) appendAssistant() {
	if p.lastResponse == nil {
		return
	}
	respJSON, _ := json.Marshal(p.lastResponse)
	p.messages = append(p.messages, llm.Message{
		Role:    llm.RoleAssistant,
		Content: string(respJSON),
	})
}

func (p *Planner) buildResult(resp *llm.PlanResponse, at string, existing []schedule.Schedule, errs []ValidationError) *Result {
	free := p.scheduler.FreeSlots(existing)
	return &Result{
		Proposals:        resp.Inputs(),
		Warnings:         resp.Warnings,
		Suggestions:      resp.Suggestions,
		ValidationErrors: errs,
		At:               at,
		FreeSlots:        free,
		FreeMinutes:      p.scheduler.FreeMinutes(existing),
	}
}

// Save adds the proposals to the store and persists it.
func (p *Planner) Save(ctx context.Context, result *Result) ([]schedule.Schedule, error) {
	if result.HasValidationErrors() {
		return nil, ErrInvalidPlan
	}
	if len(result.Proposals) == 0 {
		return nil, nil
	}

	added := make([]schedule.Schedule, 0, len(result.Proposals))
	for _, in := range result.Proposals {
		s, err := p.store.Add(ctx, in)
		if err != nil {
			return added, fmt.Errorf("adding %q: %w", in.Title, err)
		}
		added = append(added, s)
	}
	if err := p.store.Save(ctx); err != nil {
		return added, err
	}
	p.log.Info("plan saved", zap.Int("schedules", len(added)))
	return added, nil
}
