package list

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	completed lipgloss.Style
	key       lipgloss.Style
	category  lipgloss.Style
	quantity  lipgloss.Style
	warning   lipgloss.Style
	meta      lipgloss.Style
	section   lipgloss.Style
	empty     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		completed: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		key:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		category:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		quantity:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		meta:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		section:   lipgloss.NewStyle().MarginTop(1),
		empty:     lipgloss.NewStyle().Faint(true),
	}
}
