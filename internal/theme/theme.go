// Package theme provides the lipgloss styles used for all command output,
// mirroring classic terminal BBS color conventions.
package theme

import "github.com/charmbracelet/lipgloss"

var (
	primary   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	secondary = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	success   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warning   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	info      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	highlight = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	dim       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	accent    = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

// Primary renders section titles.
func Primary(s string) string { return primary.Render(s) }

// Secondary renders field labels.
func Secondary(s string) string { return secondary.Render(s) }

// Success renders confirmation messages.
func Success(s string) string { return success.Render(s) }

// Error renders failure messages.
func Error(s string) string { return errStyle.Render(s) }

// Warning renders cautionary messages.
func Warning(s string) string { return warning.Render(s) }

// Info renders hints and tips.
func Info(s string) string { return info.Render(s) }

// Highlight renders command names and emphasized values.
func Highlight(s string) string { return highlight.Render(s) }

// Dim renders timestamps and incidental detail.
func Dim(s string) string { return dim.Render(s) }

// Accent renders statuses and badges.
func Accent(s string) string { return accent.Render(s) }
