package ui

import "github.com/charmbracelet/lipgloss"

// Color palette. Single cyan accent; errors and warnings use the
// conventional terminal colors.
const (
	ColorCyan     = "51"  // Primary accent
	ColorGray     = "245" // Secondary text, page numbers
	ColorDarkGray = "238" // Separators
	ColorRed      = "196" // Errors
	ColorYellow   = "220" // Warnings
	ColorGreen    = "46"  // Success
)

// Styles holds the terminal styles used by command output.
type Styles struct {
	Mnemonic lipgloss.Style
	Page     lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Dim      lipgloss.Style
}

// DefaultStyles returns colored styles for terminal output.
func DefaultStyles() Styles {
	return Styles{
		Mnemonic: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorCyan)),
		Page:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
	}
}

// NoColorStyles returns unstyled components for plain output.
func NoColorStyles() Styles {
	return Styles{
		Mnemonic: lipgloss.NewStyle(),
		Page:     lipgloss.NewStyle(),
		Success:  lipgloss.NewStyle(),
		Warning:  lipgloss.NewStyle(),
		Error:    lipgloss.NewStyle(),
		Dim:      lipgloss.NewStyle(),
	}
}
