package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorAccent  = lipgloss.Color("204") // pink, author names
	colorPrimary = lipgloss.Color("35")  // green, summary controls
	colorDim     = lipgloss.Color("240") // gray
	colorError   = lipgloss.Color("196") // red
	colorBorder  = lipgloss.Color("238") // dark gray

	// Input area
	styleInput = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	// Message bubbles
	styleBubbleLocal = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("252")).
				Padding(0, 1)

	styleBubbleOther = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(0, 1)

	styleAuthor = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleTimestamp = lipgloss.NewStyle().
			Foreground(colorDim)

	// Panels
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	styleActiveBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	// Summary screen
	styleLabel = lipgloss.NewStyle().
			Bold(true)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleSpinner = lipgloss.NewStyle().
			Foreground(colorPrimary)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	// Panel titles
	styleTitle = lipgloss.NewStyle().
			Foreground(colorDim).
			Bold(true)
)
