package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors
var (
	Primary   = lipgloss.Color("#33A8FF")
	Secondary = lipgloss.Color("#163047")
	Muted     = lipgloss.Color("#6B7280")
	Success   = lipgloss.Color("#10B981")
	Warning   = lipgloss.Color("#F59E0B")
	Error     = lipgloss.Color("#EF4444")
)

// Shared styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	HeaderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(Muted).
			Padding(0, 1)

	DashboardStyle = lipgloss.NewStyle().
			Padding(1, 2)

	DashboardBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(1, 0, 0, 0)

	ProfileStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(Warning)
)

// StatusColor maps EC2 instance states to theme colors.
func StatusColor(state string) color.Color {
	switch state {
	case "running":
		return Success
	case "stopped", "terminated":
		return Error
	case "pending", "stopping", "shutting-down":
		return Warning
	default:
		return Muted
	}
}

// RenderStatus renders a state with a colored bullet.
func RenderStatus(state string) string {
	if state == "" {
		state = "unknown"
	}
	bullet := lipgloss.NewStyle().Foreground(StatusColor(state)).Render("●")
	return bullet + " " + state
}
