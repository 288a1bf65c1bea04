package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/studyplan/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	Title       lipgloss.Style
	DayTab      lipgloss.Style
	DayTabToday lipgloss.Style
	DayTabSel   lipgloss.Style

	TimeLabel lipgloss.Style
	EmptySlot lipgloss.Style
	Muted     lipgloss.Style

	ColumnHeader      lipgloss.Style
	ColumnHeaderToday lipgloss.Style

	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	FieldLabel lipgloss.Style
	FieldFocus lipgloss.Style

	StatusInfo    lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style

	Help lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	base := lipgloss.NewStyle().Foreground(p.Fg)
	tab := base.Padding(0, 1)

	return &Styles{
		palette: p,

		Title:       base.Bold(true).Foreground(p.Accent),
		DayTab:      tab.Foreground(p.FgMuted),
		DayTabToday: tab.Foreground(p.Today).Bold(true),
		DayTabSel:   tab.Background(p.Accent).Foreground(p.TextOnAccent).Bold(true),

		TimeLabel: lipgloss.NewStyle().Foreground(p.FgMuted).Width(9).Align(lipgloss.Right),
		EmptySlot: lipgloss.NewStyle().Foreground(p.BgSelection),
		Muted:     lipgloss.NewStyle().Foreground(p.FgMuted),

		ColumnHeader:      base.Bold(true),
		ColumnHeaderToday: base.Bold(true).Foreground(p.Today),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		PanelTitle: base.Bold(true).Foreground(p.Accent),
		FieldLabel: lipgloss.NewStyle().Foreground(p.FgMuted).Width(11),
		FieldFocus: lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Width(11),

		StatusInfo:    lipgloss.NewStyle().Foreground(p.Fg),
		StatusSuccess: lipgloss.NewStyle().Foreground(p.Success),
		StatusWarning: lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(p.Error).Bold(true),

		Help: lipgloss.NewStyle().Foreground(p.FgMuted),
	}
}

// Block returns the style of a session block in the subject's colour.
func (s *Styles) Block(color string, selected bool) lipgloss.Style {
	if color == "" {
		color = string(s.palette.Session)
	}
	bg := s.palette.BlockBg(color)
	if selected {
		bg = s.palette.BlockSelectedBg(color)
	}
	st := lipgloss.NewStyle().
		Background(bg).
		Foreground(s.palette.BlockText(color)).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 1)
	if selected {
		st = st.Bold(true)
	}
	return st
}

// status returns the style for a status kind.
func (s *Styles) status(k statusKind) lipgloss.Style {
	switch k {
	case statusSuccess:
		return s.StatusSuccess
	case statusWarning:
		return s.StatusWarning
	case statusError:
		return s.StatusError
	default:
		return s.StatusInfo
	}
}
