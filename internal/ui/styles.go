package ui

import (
	"github.com/charmbracelet/lipgloss"

	"xscan/internal/model"
)

// This file centralizes the lipgloss styles used for terminal output.

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("63")). // Purple
			Bold(true).
			Padding(0, 1)

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light Gray

	criticalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)
	majorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange
	minorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")) // Yellow
	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	violationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func severityStyle(s model.Severity) lipgloss.Style {
	switch s {
	case model.SeverityCritical:
		return criticalStyle
	case model.SeverityMajor:
		return majorStyle
	case model.SeverityMinor:
		return minorStyle
	default:
		return normalStyle
	}
}
