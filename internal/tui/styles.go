package tui

import "github.com/charmbracelet/lipgloss"

// Styles collects the lipgloss styles for one theme
type Styles struct {
	Title     lipgloss.Style
	Candidate lipgloss.Style
	Ordinal   lipgloss.Style
	Empty     lipgloss.Style
	Status    lipgloss.Style
	Hint      lipgloss.Style
}

// DarkStyles is the default theme
func DarkStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75")),
		Candidate: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("237")).
			Padding(0, 1).
			MarginRight(1),
		Ordinal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}

// LightStyles mirrors the original demo's light mode
func LightStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("26")),
		Candidate: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("254")).
			Padding(0, 1).
			MarginRight(1),
		Ordinal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("166")).
			Bold(true),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("28")),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("249")),
	}
}

// StylesForTheme maps a theme name to its styles, defaulting to dark
func StylesForTheme(theme string) Styles {
	if theme == "light" {
		return LightStyles()
	}
	return DarkStyles()
}
