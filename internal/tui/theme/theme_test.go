package theme

import (
	"regexp"
	"slices"
	"testing"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func TestLoad_Names(t *testing.T) {
	tests := map[string]string{
		"mocha":     "mocha",
		"Latte":     "latte",
		" frappe ":  "frappe",
		"macchiato": "macchiato",
		"":          DefaultName,
		"solarized": DefaultName,
	}
	for in, want := range tests {
		th, err := Load(in)
		if err != nil {
			t.Fatalf("Load(%q): %v", in, err)
		}
		if th.Name != want {
			t.Errorf("Load(%q).Name = %q, want %q", in, th.Name, want)
		}
	}
}

func TestEmbeddedThemesAreComplete(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			th, err := Load(name)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			fields := []string{th.Bg, th.BgHighlight, th.BgSelection, th.Fg, th.FgMuted,
				th.Accent, th.Session, th.Today, th.Warning, th.Success, th.Error, th.Border}
			for i, hex := range fields {
				if !hexPattern.MatchString(hex) {
					t.Errorf("field %d = %q, want #RRGGBB", i, hex)
				}
			}
			if th.Border != th.Accent {
				t.Errorf("border = %q, want the accent %q", th.Border, th.Accent)
			}
		})
	}
}

func TestLoad_ReturnsCopies(t *testing.T) {
	a, _ := Load("mocha")
	a.Accent = "#000000"
	b, _ := Load("mocha")
	if b.Accent == "#000000" {
		t.Error("mutating a loaded theme changed the registry")
	}
}

func TestWithSessionColor(t *testing.T) {
	base, _ := Load("mocha")
	if got := base.WithSessionColor("#3B82F6").Session; got != "#3B82F6" {
		t.Errorf("Session = %q", got)
	}
	if got := base.WithSessionColor("").Session; got != base.Session {
		t.Errorf("empty colour changed Session to %q", got)
	}
	if base.Session == "#3B82F6" {
		t.Error("WithSessionColor modified the receiver")
	}
}

func TestAvailable(t *testing.T) {
	got := Available()
	if !slices.Equal(got, []string{"mocha", "macchiato", "frappe", "latte"}) {
		t.Errorf("Available() = %v", got)
	}
	got[0] = "changed"
	if Available()[0] != "mocha" {
		t.Error("Available exposes its backing slice")
	}

	for name, want := range map[string]bool{"mocha": true, "LATTE": true, "dracula": false, "": false} {
		if IsAvailable(name) != want {
			t.Errorf("IsAvailable(%q) = %t", name, !want)
		}
	}
}
