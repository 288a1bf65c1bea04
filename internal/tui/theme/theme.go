// Package theme provides the TUI colour themes.
package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

// DefaultName is used for an empty or unknown theme name.
const DefaultName = "mocha"

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// order lists the embedded themes dark first.
var order = []string{"mocha", "macchiato", "frappe", "latte"}

// Theme holds every colour the board uses, as #RRGGBB.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`
	BgHighlight string `toml:"bg_highlight"` // panels, status line
	BgSelection string `toml:"bg_selection"` // selected block
	Fg          string `toml:"fg"`
	FgMuted     string `toml:"fg_muted"` // hints, empty slots
	Accent      string `toml:"accent"`   // title, borders
	Session     string `toml:"session"`  // blocks whose subject has no colour
	Today       string `toml:"today"`
	Warning     string `toml:"warning"` // conflicts, reminders
	Success     string `toml:"success"`
	Error       string `toml:"error"`
	Border      string `toml:"border"`
}

var (
	parseOnce sync.Once
	parsed    map[string]Theme
	parseErr  error
)

// themes parses the embedded files once.
func themes() (map[string]Theme, error) {
	parseOnce.Do(func() {
		files, err := fs.Glob(embeddedThemes, "embedded/*.toml")
		if err != nil {
			parseErr = err
			return
		}
		parsed = make(map[string]Theme, len(files))
		for _, file := range files {
			data, err := embeddedThemes.ReadFile(file)
			if err != nil {
				parseErr = fmt.Errorf("reading %s: %w", file, err)
				return
			}
			var t Theme
			if err := toml.Unmarshal(data, &t); err != nil {
				parseErr = fmt.Errorf("parsing %s: %w", file, err)
				return
			}
			if t.Name == "" {
				t.Name = strings.TrimSuffix(path.Base(file), ".toml")
			}
			t.applyDefaults()
			parsed[t.Name] = t
		}
	})
	return parsed, parseErr
}

// Load returns the named theme, or mocha when the name is unknown.
func Load(name string) (*Theme, error) {
	all, err := themes()
	if err != nil {
		return nil, fmt.Errorf("loading themes: %w", err)
	}
	t, ok := all[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		if t, ok = all[DefaultName]; !ok {
			return nil, fmt.Errorf("theme %q not embedded", DefaultName)
		}
	}
	return &t, nil
}

// WithSessionColor returns a copy whose fallback block colour is hex.
// Empty hex keeps the theme's own colour.
func (t Theme) WithSessionColor(hex string) *Theme {
	if hex != "" {
		t.Session = hex
	}
	return &t
}

func (t *Theme) applyDefaults() {
	t.Border = coalesce(t.Border, t.Accent)
	t.Session = coalesce(t.Session, t.Accent)
	t.Today = coalesce(t.Today, t.Accent)
	t.Success = coalesce(t.Success, t.Fg)
	t.Error = coalesce(t.Error, t.Warning)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Color converts a hex string for lipgloss.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Available returns the theme names offered by `studyplan config`.
func Available() []string {
	return slices.Clone(order)
}

func IsAvailable(name string) bool {
	return slices.Contains(order, strings.ToLower(strings.TrimSpace(name)))
}
