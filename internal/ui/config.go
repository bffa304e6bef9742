package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/clockplan/internal/config"
	"github.com/javiermolinar/clockplan/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  clockplan config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return a.runConfigInteractive(path)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Config file (default ~/.config/clockplan/config.toml)")
	return cmd
}

func (a *App) runConfigInteractive(configPath string) error {
	fmt.Fprintf(a.out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(a.out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(a.out, "Created %s\n\n", configPath)
	}

	a.printConfig(cfg)

	if !a.promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Day.Start = a.promptValue("Day start", cfg.Day.Start)
	cfg.Day.End = a.promptValue("Day end", cfg.Day.End)
	cfg.Storage.Backend = a.promptChoice("Storage backend", cfg.Storage.Backend, []string{config.BackendSQLite, config.BackendJSON})
	if cfg.Storage.Backend == config.BackendJSON {
		cfg.Storage.JSONPath = a.promptValue("JSON file path", cfg.Storage.JSONPath)
	} else {
		cfg.Storage.DBPath = a.promptValue("Database path", cfg.Storage.DBPath)
	}
	cfg.Notifications.Enabled = a.promptChoice("Start notifications", onOff(cfg.Notifications.Enabled), []string{"on", "off"}) == "on"
	cfg.Notifications.Sender = a.promptChoice("Notification sender", cfg.Notifications.Sender, []string{"terminal", "log"})
	cfg.LLM.Provider = a.promptValue("LLM provider", cfg.LLM.Provider)
	cfg.LLM.Model = a.promptValue("LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = a.promptValue("LLM base URL (Ollama/LM Studio)", cfg.LLM.BaseURL)
	cfg.UI.Theme = a.promptChoice("UI theme", cfg.UI.Theme, theme.Available())
	cfg.UI.Language = a.promptChoice("Language", cfg.UI.Language, []string{"en", "ko"})

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(a.out, "\nConfiguration saved!")
	return nil
}

func (a *App) printConfig(cfg *config.Config) {
	w := a.out
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[day]")
	fmt.Fprintf(w, "  start         = %s\n", cfg.Day.Start)
	fmt.Fprintf(w, "  end           = %s\n", cfg.Day.End)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  backend       = %s\n", cfg.Storage.Backend)
	fmt.Fprintf(w, "  db_path       = %s\n", cfg.Storage.DBPath)
	fmt.Fprintf(w, "  json_path     = %s\n", cfg.Storage.JSONPath)
	fmt.Fprintln(w, "\n[notifications]")
	fmt.Fprintf(w, "  enabled       = %t\n", cfg.Notifications.Enabled)
	fmt.Fprintf(w, "  sender        = %s\n", cfg.Notifications.Sender)
	fmt.Fprintf(w, "  poll_interval = %s\n", cfg.Notifications.PollInterval)
	fmt.Fprintln(w, "\n[llm]")
	fmt.Fprintf(w, "  provider      = %s\n", cfg.LLM.Provider)
	fmt.Fprintf(w, "  model         = %s\n", cfg.LLM.Model)
	fmt.Fprintf(w, "  base_url      = %s\n", cfg.LLM.BaseURL)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme         = %s\n", cfg.UI.Theme)
	fmt.Fprintf(w, "  language      = %s\n", cfg.UI.Language)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level         = %s\n", cfg.Log.Level)
	if cfg.Log.File != "" {
		fmt.Fprintf(w, "  file          = %s\n", cfg.Log.File)
	}
}

func (a *App) readLine() string {
	input, _ := a.in.ReadString('\n')
	return strings.TrimSpace(input)
}

func (a *App) promptYesNo(question string) bool {
	fmt.Fprintf(a.out, "%s [y/N]: ", question)
	input := strings.ToLower(a.readLine())
	return input == "y" || input == "yes"
}

func (a *App) promptValue(label, current string) string {
	if current == "" {
		fmt.Fprintf(a.out, "  %s: ", label)
	} else {
		fmt.Fprintf(a.out, "  %s [%s]: ", label, current)
	}
	input := a.readLine()
	if input == "" {
		return current
	}
	return input
}

// promptChoice repeats the question until the answer is one of options.
// EOF keeps the current value.
func (a *App) promptChoice(label, current string, options []string) string {
	joined := strings.Join(options, ", ")
	full := fmt.Sprintf("%s (%s)", label, joined)
	for range 3 {
		value := strings.ToLower(a.promptValue(full, current))
		for _, opt := range options {
			if value == opt {
				return value
			}
		}
		fmt.Fprintf(a.out, "  Invalid value %q. Available: %s\n", value, joined)
	}
	return current
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
