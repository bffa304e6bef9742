package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNoGitHubToken is returned when no GitHub token can be found for Copilot.
var ErrNoGitHubToken = errors.New("GitHub token not found: set GITHUB_TOKEN or sign in to GitHub Copilot in your editor")

// tokenEnvVars are checked in order before the Copilot config files.
var tokenEnvVars = []string{"CLOCKPLAN_GITHUB_TOKEN", "GITHUB_TOKEN", "GH_TOKEN"}

// LoadGitHubToken returns the GitHub OAuth token Copilot is exchanged from.
// Environment variables win over the hosts.json and apps.json files the
// Copilot editor plugins write.
func LoadGitHubToken() (string, error) {
	if token := firstEnv(tokenEnvVars...); token != "" {
		return token, nil
	}

	dir, err := copilotConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating copilot config: %w", err)
	}
	for _, name := range []string{"hosts.json", "apps.json"} {
		if token, err := tokenFromFile(filepath.Join(dir, name)); err == nil {
			return token, nil
		}
	}
	return "", ErrNoGitHubToken
}

// copilotConfigDir returns the github-copilot directory under the user's
// config directory.
func copilotConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "github-copilot"), nil
	}
	if runtime.GOOS == "windows" {
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, "github-copilot"), nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(home, "AppData", "Local", "github-copilot"), nil
	}
	return filepath.Join(home, ".config", "github-copilot"), nil
}

// tokenFromFile reads the oauth_token of a github.com entry.
func tokenFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var hosts map[string]struct {
		OAuthToken string `json:"oauth_token"`
	}
	if err := json.Unmarshal(data, &hosts); err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}
	for host, entry := range hosts {
		if strings.Contains(host, "github.com") && entry.OAuthToken != "" {
			return entry.OAuthToken, nil
		}
	}
	return "", fmt.Errorf("no oauth_token in %s", path)
}
