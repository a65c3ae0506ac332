package ui

import "github.com/charmbracelet/lipgloss"

var (
	focusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorIris)

	blurredBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorOverlay)

	titleStyle = lipgloss.NewStyle().
			Foreground(ColorIris).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(ColorGold)

	sortMarkerStyle = lipgloss.NewStyle().
			Foreground(ColorRose)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorIris)

	markedStyle = lipgloss.NewStyle().
			Foreground(ColorMarked).
			Bold(true)

	markedSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorGold).
				Background(ColorIris).
				Bold(true)

	directoryStyle = lipgloss.NewStyle().
			Foreground(ColorDirectory).
			Bold(true)

	entryStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	separatorStyle = lipgloss.NewStyle().
			Foreground(ColorOverlay)

	tabStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(ColorBase).
			Background(ColorRose).
			Bold(true)

	miniStatusStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	searchStatusStyle = lipgloss.NewStyle().
				Foreground(ColorFoam).
				Bold(true)
)
