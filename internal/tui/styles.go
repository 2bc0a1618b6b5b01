package tui

import (
	"charm.land/lipgloss/v2"

	"tasnim.dev/gamebox/internal/tui/theme"
)

var (
	titleStyle     = theme.TitleStyle
	headerStyle    = theme.HeaderStyle
	labelStyle     = theme.MutedStyle
	sectionStyle   = theme.MutedStyle
	profileStyle   = theme.ProfileStyle
	helpStyle      = theme.HelpStyle
	errorStyle     = theme.ErrorStyle
	busyStyle      = theme.LoadingStyle
	passwordStyle  = theme.SuccessStyle
	dashboardStyle = theme.DashboardStyle
	panelStyle     = theme.DashboardBoxStyle

	disabledKeyStyle = lipgloss.NewStyle().
				Foreground(theme.Muted).
				Strikethrough(true)
)
