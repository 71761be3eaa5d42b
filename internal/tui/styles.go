package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorFgPrimary   = lipgloss.Color("#ABB2BF")
	ColorFgMuted     = lipgloss.Color("#636B78")
	ColorRed         = lipgloss.Color("#E06C75")
	ColorGreen       = lipgloss.Color("#98C379")
	ColorYellow      = lipgloss.Color("#E5C07B")
	ColorBlue        = lipgloss.Color("#61AFEF")
	ColorBgHighlight = lipgloss.Color("#2C313C")
	ColorBorder      = lipgloss.Color("#3F4451")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true).
			PaddingLeft(1)

	ColumnStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	RowStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorFgPrimary).
				Background(ColorBgHighlight).
				Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			PaddingLeft(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			PaddingLeft(1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1)

	FormLabelStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Width(20)

	FormBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)
