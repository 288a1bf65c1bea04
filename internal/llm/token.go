package llm

import (
	"encoding/json"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
)

// tokenEnvVars are checked in order before the Copilot config files.
var tokenEnvVars = []string{"STUDYPLAN_GITHUB_TOKEN", "GITHUB_TOKEN", "GH_TOKEN"}

// ErrNoGitHubToken is returned when neither the environment nor the
// Copilot sign-in files hold a token.
var ErrNoGitHubToken = errors.New("GitHub token not found: set GITHUB_TOKEN or sign in to GitHub Copilot")

// copilotHost is one entry of the Copilot hosts.json or apps.json file.
type copilotHost struct {
	User       string `json:"user"`
	OAuthToken string `json:"oauth_token"`
}

// LoadGitHubToken finds the OAuth token used for the Copilot exchange.
func LoadGitHubToken() (string, error) {
	for _, name := range tokenEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, nil
		}
	}

	dir, err := copilotConfigDir()
	if err != nil {
		return "", err
	}
	for _, name := range []string{"hosts.json", "apps.json"} {
		if token := tokenFromHostsFile(filepath.Join(dir, name)); token != "" {
			return token, nil
		}
	}
	return "", ErrNoGitHubToken
}

// copilotConfigDir is where IDE plugins store the Copilot sign-in.
func copilotConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" && runtime.GOOS == "windows" {
		base = os.Getenv("LOCALAPPDATA")
	}
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "github-copilot"), nil
}

// tokenFromHostsFile returns the github.com token in path, or "".
// apps.json keys carry a client id suffix ("github.com:Iv1.abc").
func tokenFromHostsFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var hosts map[string]copilotHost
	if err := json.Unmarshal(data, &hosts); err != nil {
		return ""
	}
	for _, key := range slices.Sorted(maps.Keys(hosts)) {
		if strings.HasPrefix(key, "github.com") && hosts[key].OAuthToken != "" {
			return hosts[key].OAuthToken
		}
	}
	return ""
}
