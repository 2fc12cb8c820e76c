package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used across commands.
type Styles struct {
	Header1    lipgloss.Style
	Header2    lipgloss.Style
	Bold       lipgloss.Style
	Muted      lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Success    lipgloss.Style
	Info       lipgloss.Style
	ModulePath lipgloss.Style
}

func newStyles(profile termenv.Profile) *Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)

	return &Styles{
		Header1:    r.NewStyle().Bold(true).Underline(true),
		Header2:    r.NewStyle().Bold(true),
		Bold:       r.NewStyle().Bold(true),
		Muted:      r.NewStyle().Foreground(lipgloss.Color("240")),
		Error:      r.NewStyle().Foreground(lipgloss.Color("9")),
		Warning:    r.NewStyle().Foreground(lipgloss.Color("11")),
		Success:    r.NewStyle().Foreground(lipgloss.Color("10")),
		Info:       r.NewStyle().Foreground(lipgloss.Color("12")),
		ModulePath: r.NewStyle().Bold(true).Underline(true),
	}
}
