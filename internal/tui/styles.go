package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00E5FF")).
			MarginLeft(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#6D28D9")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#334155")).
			Padding(0, 1).
			Width(26)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00E5FF")).
			Padding(0, 1)

	alertBoxStyle = boxStyle.
			BorderForeground(lipgloss.Color("#F43F5E"))

	securedBoxStyle = boxStyle.
			BorderForeground(lipgloss.Color("#10B981"))

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(1)

	statusColors = map[string]lipgloss.Color{
		"safe":    lipgloss.Color("#10B981"),
		"warning": lipgloss.Color("#F59E0B"),
		"danger":  lipgloss.Color("#F43F5E"),
	}

	severityColors = map[string]lipgloss.Color{
		"low":    lipgloss.Color("#10B981"),
		"medium": lipgloss.Color("#F59E0B"),
		"high":   lipgloss.Color("#F43F5E"),
	}
)
