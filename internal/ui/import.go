package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/clockplan/internal/config"
	"github.com/javiermolinar/clockplan/internal/db"
	"github.com/javiermolinar/clockplan/internal/exchange"
	"github.com/javiermolinar/clockplan/internal/schedule"
	"github.com/javiermolinar/clockplan/internal/store"
)

// formatDB imports from another clockplan SQLite database.
const formatDB = "db"

func (a *App) importCmd() *cobra.Command {
	var (
		format  string
		replace bool
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "import [path]",
		Short: "Import schedules from a file or another database",
		Long: `Add schedules from a JSON, YAML or iCalendar file, or from another
clockplan database, to the current collection.

Imported schedules get new ids. iCalendar events that are all-day or
cross midnight are skipped and reported. Use "-" to read stdin.

Examples:
  clockplan import backup.json
  clockplan import calendar.ics
  clockplan import --format=db /path/to/other.db
  clockplan import --replace backup.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			ctx := context.Background()

			var (
				inputs  []schedule.Input
				skipped []string
				err     error
			)
			if format == formatDB || (format == "" && isDBPath(args[0])) {
				inputs, err = a.readDatabase(ctx, args[0])
			} else {
				inputs, skipped, err = a.readFile(args[0], format)
			}
			if err != nil {
				return err
			}

			for _, reason := range skipped {
				fmt.Fprintf(a.out, "%s %s\n", formatWarning("skipped:"), reason)
			}
			if len(inputs) == 0 {
				fmt.Fprintln(a.out, "Nothing to import.")
				return nil
			}

			if replace {
				if !yes && !a.promptYesNo(fmt.Sprintf("Replace all %d schedules?", a.store.Len())) {
					return errCancelled
				}
				a.store.ClearAll(ctx)
			}

			count, err := importSchedules(ctx, a.store, inputs)
			if err != nil {
				return err
			}
			if err := a.store.Save(ctx); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Imported %d schedules from %s\n", count, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "json, yaml, ics or db (default from the extension)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Delete existing schedules first")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (a *App) readFile(path, format string) ([]schedule.Input, []string, error) {
	f, err := resolveFormat(format, path, exchange.FormatJSON)
	if err != nil {
		return nil, nil, err
	}

	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		sourcePath, err := resolvePath(path)
		if err != nil {
			return nil, nil, err
		}
		file, err := os.Open(sourcePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s: %w", sourcePath, err)
		}
		defer func() { _ = file.Close() }()
		r = file
	}

	result, err := exchange.Import(r, f, exchange.ImportOptions{})
	if err != nil {
		return nil, nil, err
	}
	return result.Inputs, result.Skipped, nil
}

// readDatabase loads every schedule of another clockplan database.
func (a *App) readDatabase(ctx context.Context, path string) ([]schedule.Input, error) {
	sourcePath, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if a.config.Storage.Backend == config.BackendSQLite {
		destPath, err := resolvePath(a.config.Storage.DBPath)
		if err != nil {
			return nil, err
		}
		if sourcePath == destPath {
			return nil, errors.New("source database matches current database")
		}
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("source database does not exist: %s", sourcePath)
		}
		return nil, fmt.Errorf("checking source database: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("source database path is a directory: %s", sourcePath)
	}

	source, err := db.New(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = source.Close() }()

	schedules, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading source schedules: %w", err)
	}
	inputs := make([]schedule.Input, len(schedules))
	for i, s := range schedules {
		inputs[i] = schedule.InputOf(s)
	}
	return inputs, nil
}

// importSchedules adds inputs to dest in order. It stops at the first
// invalid input and reports how many were added.
func importSchedules(ctx context.Context, dest *store.Store, inputs []schedule.Input) (int, error) {
	imported := 0
	for _, in := range inputs {
		if _, err := dest.Add(ctx, in); err != nil {
			return imported, fmt.Errorf("importing schedule %q: %w", in.Title, err)
		}
		imported++
	}
	return imported, nil
}

func isDBPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	default:
		return false
	}
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
