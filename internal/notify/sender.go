package notify

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

var (
	colorTitle = color.New(color.FgCyan, color.Bold)
	colorBody  = color.New(color.FgWhite)
)

// TerminalSender writes messages to w, ringing the terminal bell.
type TerminalSender struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTerminalSender returns a sender writing to w.
func NewTerminalSender(w io.Writer) *TerminalSender {
	return &TerminalSender{w: w}
}

// Send implements Sender.
func (t *TerminalSender) Send(_ context.Context, msg Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	b.WriteString("\a")
	b.WriteString(colorTitle.Sprint(msg.Title))
	b.WriteString("\n")
	for _, line := range strings.Split(msg.Body, "\n") {
		b.WriteString("  ")
		b.WriteString(colorBody.Sprint(line))
		b.WriteString("\n")
	}
	_, err := fmt.Fprint(t.w, b.String())
	return err
}

// LogSender records messages in the log. Used when running as a service
// without a terminal.
type LogSender struct {
	log *zap.Logger
}

// NewLogSender returns a sender writing to log.
func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

// Send implements Sender.
func (l *LogSender) Send(_ context.Context, msg Message) error {
	l.log.Info("schedule starting",
		zap.String("schedule_id", msg.ScheduleID),
		zap.String("title", msg.Title),
		zap.String("body", msg.Body))
	return nil
}

// NewSender builds the sender named in the config.
func NewSender(kind string, w io.Writer, log *zap.Logger) (Sender, error) {
	switch kind {
	case "terminal", "":
		return NewTerminalSender(w), nil
	case "log":
		return NewLogSender(log), nil
	default:
		return nil, fmt.Errorf("unknown notification sender: %s (supported: terminal, log)", kind)
	}
}
