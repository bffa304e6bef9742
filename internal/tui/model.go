// Package tui provides the terminal user interface for clockplan.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/config"
	"github.com/javiermolinar/clockplan/internal/planner"
	"github.com/javiermolinar/clockplan/internal/schedule"
	"github.com/javiermolinar/clockplan/internal/store"
	"github.com/javiermolinar/clockplan/internal/summary"
	"github.com/javiermolinar/clockplan/internal/tui/commands"
	"github.com/javiermolinar/clockplan/internal/tui/theme"
	"github.com/javiermolinar/clockplan/internal/tui/view"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone         ModalType = iota
	ModalScheduleForm           // New or edited schedule
	ModalConfirmOverlap
	ModalConfirmDelete
	ModalConfirmClear
	ModalPlanResult // Show LLM planning results
	ModalSummary
	ModalInit
)

// tickInterval drives the clock hands and the current schedule.
const tickInterval = time.Second

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store  *store.Store
	config *config.Config
	log    *zap.Logger
	now    func() time.Time

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Clock state, refreshed on every tick
	at        time.Time
	currentID string
	nextID    string

	// List state
	cursor int // index into the time-sorted schedules
	mode   Mode

	// Modal state
	modalType ModalType
	form      scheduleForm
	pending   *pendingChange // change waiting for overlap confirmation
	deleteID  string
	initState InitState // Startup initialization state
	initError string    // Initialization error for modal display

	// Planning state
	planner    *planner.Planner // LLM planner (created on demand)
	planResult *planner.Result  // Current planning result
	planInput  string           // Original plan input
	amending   bool             // Next prompt submit amends the plan

	// Summary state
	summary      *summary.DaySummary
	summaryLines []view.SummaryLine

	// Overlay state
	overlay OverlayModel

	// Components
	prompt textinput.Model

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Error state
	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithInitState sets the startup initialization state.
func WithInitState(state InitState) ModelOption {
	return func(m *Model) {
		m.initState = state
		if state.NeedsInit {
			m.mode = ModeModal
			m.modalType = ModalInit
		}
	}
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) ModelOption {
	return func(m *Model) {
		if log != nil {
			m.log = log
		}
	}
}

// New creates a new TUI model. st must already be loaded.
func New(st *store.Store, cfg *config.Config, opts ...ModelOption) *Model {
	ti := textinput.New()
	ti.Placeholder = "/plan ..."

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	m := &Model{
		store:   st,
		config:  cfg,
		log:     zap.NewNop(),
		now:     time.Now,
		theme:   t,
		styles:  styles,
		mode:    ModeNormal,
		prompt:  ti,
		form:    newScheduleForm(styles),
		overlay: NewOverlayModel(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.at = m.now()
	m.refreshCurrent()
	m.focusCurrent()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.Tick(tickInterval)
}

// atString is the engine time for the last tick.
func (m Model) atString() string {
	return clock.CurrentTime(func() time.Time { return m.at })
}

// schedules returns the store contents in time order, the order of the list.
func (m Model) schedules() []schedule.Schedule {
	return schedule.SortByTime(m.store.Schedules())
}

// refreshCurrent recomputes the current and next schedules for m.at.
func (m *Model) refreshCurrent() {
	all := m.store.Schedules()
	at := m.atString()

	m.currentID = ""
	if cur, ok := schedule.Current(all, at); ok {
		m.currentID = cur.ID
	}
	m.nextID = ""
	if next, ok := schedule.Next(all, at); ok {
		m.nextID = next.ID
	}
}

// focusCurrent moves the cursor to the current schedule, or the next one.
func (m *Model) focusCurrent() {
	target := m.currentID
	if target == "" {
		target = m.nextID
	}
	for i, s := range m.schedules() {
		if s.ID == target {
			m.cursor = i
			return
		}
	}
}

// clampCursor keeps the cursor inside the list.
func (m *Model) clampCursor() {
	n := m.store.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selected returns the schedule under the cursor.
func (m Model) selected() (schedule.Schedule, bool) {
	list := m.schedules()
	if m.cursor < 0 || m.cursor >= len(list) {
		return schedule.Schedule{}, false
	}
	return list[m.cursor], true
}

// Options configures Run.
type Options struct {
	Logger    *zap.Logger
	InitState InitState
}

// Run starts the TUI on st, which must already be loaded.
func Run(st *store.Store, cfg *config.Config, opts Options) error {
	model := New(st, cfg, WithInitState(opts.InitState), WithLogger(opts.Logger))
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
