package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/clockplan/internal/config"
	"github.com/javiermolinar/clockplan/internal/db"
	"github.com/javiermolinar/clockplan/internal/jsonfile"
	"github.com/javiermolinar/clockplan/internal/logger"
	"github.com/javiermolinar/clockplan/internal/notify"
	"github.com/javiermolinar/clockplan/internal/store"
	"github.com/javiermolinar/clockplan/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store  *store.Store
	config *config.Config
	log    *zap.Logger
	root   *cobra.Command
	now    func() time.Time
	out    io.Writer
	in     *bufio.Reader
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application. st may be nil, in which case the
// store is opened from the configured backend on first use.
func NewApp(st *store.Store, cfg *config.Config) *App {
	a := &App{
		store:  st,
		config: cfg,
		log:    zap.NewNop(),
		now:    time.Now,
		out:    os.Stdout,
		in:     bufio.NewReader(os.Stdin),
	}
	a.root = a.newRootCmd()
	return a
}

// newRootCmd builds the command tree.
func (a *App) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "clockplan",
		Short: "Plan your day on a 24-hour clock",
		Long: `clockplan lays out today's schedules on a 24-hour dial.

Add titled, categorized blocks of time, see what is on right now,
find free slots, get a notification when a block starts, and export
the day as JSON, YAML, iCalendar or an SVG drawing of the dial.

Run without arguments to open the terminal UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.initLogger()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTUI()
		},
	}

	// Add global flags
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	root.AddCommand(a.versionCmd())
	root.AddCommand(a.configCmd())
	root.AddCommand(a.addCmd())
	root.AddCommand(a.editCmd())
	root.AddCommand(a.deleteCmd())
	root.AddCommand(a.clearCmd())
	root.AddCommand(a.listCmd())
	root.AddCommand(a.showCmd())
	root.AddCommand(a.nowCmd())
	root.AddCommand(a.clockCmd())
	root.AddCommand(a.freeCmd())
	root.AddCommand(a.exportCmd())
	root.AddCommand(a.importCmd())
	root.AddCommand(a.planCmd())
	root.AddCommand(a.notifyCmd())

	return root
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "clockplan %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	err := a.root.Execute()
	if errors.Is(err, errCancelled) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	return err
}

// Close releases the store backend.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func (a *App) initLogger() error {
	level := a.config.Log.Level
	if a.debug {
		level = "debug"
	}
	var (
		log *zap.Logger
		err error
	)
	if a.config.Log.File != "" {
		log, err = logger.NewFile(a.config.Log.File, level)
	} else {
		log, err = logger.New(level)
	}
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	a.log = log
	return nil
}

// runTUI opens the store and starts the terminal UI. While the TUI owns the
// terminal, logs go to the configured file, the debug file, or nowhere.
func (a *App) runTUI() error {
	state, err := tui.DetectInitState(a.config)
	if err != nil {
		return err
	}
	if a.config.Log.File == "" {
		a.log = zap.NewNop()
	}
	log, flush, err := tui.InitDebugLogger(a.debug, a.log)
	if err != nil {
		return err
	}
	defer flush()
	a.log = log

	if err := a.ensureStore(); err != nil {
		return err
	}
	return tui.Run(a.store, a.config, tui.Options{
		Logger:    a.log,
		InitState: state,
	})
}

// ensureStore opens the configured backend and loads the collection.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}
	backend, err := openBackend(a.config)
	if err != nil {
		return err
	}
	sender, err := notify.NewSender(a.config.Notifications.Sender, os.Stdout, a.log)
	if err != nil {
		closeBackend(backend)
		return err
	}
	// Never started: this process only records notification IDs. The
	// notify daemon is what fires them.
	notifier := notify.NewCronNotifier(sender,
		notify.WithEnabled(a.config.Notifications.Enabled),
		notify.WithLanguage(a.config.UI.Language),
		notify.WithLogger(a.log))

	st := store.New(backend,
		store.WithNotifier(notifier),
		store.WithLogger(a.log),
		store.WithClock(a.now))
	if err := st.Load(context.Background()); err != nil {
		_ = st.Close()
		return err
	}
	a.store = st
	return nil
}

// openBackend is replaced in tests.
var openBackend = OpenBackend

// closeBackend releases backends holding a handle, such as SQLite.
func closeBackend(b store.Backend) {
	if c, ok := b.(io.Closer); ok {
		_ = c.Close()
	}
}

// OpenBackend returns the backend selected by cfg, creating its directory.
func OpenBackend(cfg *config.Config) (store.Backend, error) {
	path := cfg.StoragePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	switch cfg.Storage.Backend {
	case config.BackendJSON:
		return jsonfile.New(path), nil
	default:
		sqlite, err := db.New(path)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		return sqlite, nil
	}
}

// SetOutput redirects command output and prompts, for tests and embedding.
func (a *App) SetOutput(out io.Writer, in io.Reader) {
	a.out = out
	a.in = bufio.NewReader(in)
	a.root.SetOut(out)
	a.root.SetErr(out)
}

// SetArgs sets the command line arguments, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// SetClock replaces the wall clock.
func (a *App) SetClock(now func() time.Time) {
	a.now = now
}
