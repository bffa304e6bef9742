package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/clockplan/internal/logger"
)

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "clockplan-debug.log"

// debugLog receives keystrokes and state transitions. It is a no-op unless
// debug logging was enabled.
var debugLog = zap.NewNop()

// InitDebugLogger returns the logger the TUI session should use. The TUI owns
// the terminal, so with debug enabled everything goes to DebugLogPath;
// otherwise log is returned unchanged. The returned func flushes the log.
func InitDebugLogger(enabled bool, log *zap.Logger) (*zap.Logger, func(), error) {
	if log == nil {
		log = zap.NewNop()
	}
	if !enabled {
		debugLog = zap.NewNop()
		return log, func() {}, nil
	}

	l, err := logger.NewFile(DebugLogPath, "debug")
	if err != nil {
		return nil, nil, fmt.Errorf("creating debug log: %w", err)
	}
	debugLog = l.Named("tui")
	debugLog.Debug("debug start", zap.String("log_file", DebugLogPath))

	return l, func() {
		debugLog.Debug("debug end")
		_ = l.Sync()
	}, nil
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	debugLog.Debug("key", zap.String("key", msg.String()))
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	if from == to {
		return
	}
	debugLog.Debug("mode",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.String("reason", reason))
}

// LogModal logs the modal being opened or closed.
func LogModal(t ModalType, reason string) {
	debugLog.Debug("modal", zap.Stringer("modal", t), zap.String("reason", reason))
}

// LogCurrentChange logs when the tick moves to another current schedule.
func LogCurrentChange(at, from, to string) {
	debugLog.Debug("current",
		zap.String("at", at),
		zap.String("from", from),
		zap.String("to", to))
}

// LogError logs an error.
func LogError(context string, err error) {
	debugLog.Error(context, zap.Error(err))
}

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModePrompt:
		return "prompt"
	case ModeModal:
		return "modal"
	default:
		return "unknown"
	}
}

func (t ModalType) String() string {
	switch t {
	case ModalNone:
		return "none"
	case ModalScheduleForm:
		return "form"
	case ModalConfirmOverlap:
		return "confirm_overlap"
	case ModalConfirmDelete:
		return "confirm_delete"
	case ModalConfirmClear:
		return "confirm_clear"
	case ModalPlanResult:
		return "plan_result"
	case ModalSummary:
		return "summary"
	case ModalInit:
		return "init"
	default:
		return "unknown"
	}
}
