package summary

import "github.com/charmbracelet/lipgloss"

// StyleConfig holds the colors used by the summaries.
type StyleConfig struct {
	PrimaryBlue   lipgloss.Color
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	BorderColor   lipgloss.Color
	Kept          lipgloss.Color
	Warning       lipgloss.Color
}

// DefaultStyles returns the default color palette
func DefaultStyles() *StyleConfig {
	return &StyleConfig{
		PrimaryBlue:   lipgloss.Color("#8AB4F8"),
		TextPrimary:   lipgloss.Color("#E8EAED"),
		TextSecondary: lipgloss.Color("#9AA0A6"),
		BorderColor:   lipgloss.Color("#5F6368"),
		Kept:          lipgloss.Color("#34A853"),
		Warning:       lipgloss.Color("#FBBC04"),
	}
}

func (s *StyleConfig) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.PrimaryBlue).
		Bold(true)
}

func (s *StyleConfig) KeyStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.TextSecondary)
}

func (s *StyleConfig) ValueStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.TextPrimary)
}

func (s *StyleConfig) KeptStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.Kept)
}

func (s *StyleConfig) NoteStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.Warning).
		Italic(true)
}

// BoxStyle frames a whole summary.
func (s *StyleConfig) BoxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.BorderColor).
		Padding(0, 1)
}
