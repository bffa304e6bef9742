package tui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/javiermolinar/clockplan/internal/config"
)

// InitState tracks whether startup initialization is required.
type InitState struct {
	NeedsInit     bool
	ConfigMissing bool
	DataMissing   bool
	ConfigPath    string
	DataPath      string
}

// DetectInitState reports which of the config and data files are absent.
// Run it before the store is opened: opening creates the data file.
func DetectInitState(cfg *config.Config) (InitState, error) {
	state := InitState{
		ConfigPath: config.DefaultConfigPath(),
		DataPath:   cfg.StoragePath(),
	}
	checks := []struct {
		what    string
		path    string
		missing *bool
	}{
		{"config", state.ConfigPath, &state.ConfigMissing},
		{"data", state.DataPath, &state.DataMissing},
	}
	for _, c := range checks {
		missing, err := pathMissing(c.path)
		if err != nil {
			return InitState{}, fmt.Errorf("checking %s path: %w", c.what, err)
		}
		*c.missing = missing
	}
	state.NeedsInit = state.ConfigMissing || state.DataMissing
	return state, nil
}

// pathMissing treats an empty path as missing.
func pathMissing(path string) (bool, error) {
	if path == "" {
		return true, nil
	}
	switch _, err := os.Stat(path); {
	case err == nil:
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	default:
		return false, err
	}
}

// initializeStorage writes the default config and an empty collection.
func (m Model) initializeStorage() (Model, error) {
	if m.initState.ConfigMissing {
		if err := m.config.SaveTo(m.initState.ConfigPath); err != nil {
			return m, fmt.Errorf("saving config: %w", err)
		}
	}
	if m.initState.DataMissing {
		if err := m.store.Save(context.Background()); err != nil {
			return m, fmt.Errorf("creating data file: %w", err)
		}
	}
	m.initState = InitState{}
	return m, nil
}
