package logx

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

// levelTagger colours level names for the console. Colour detection follows
// the writer unless mode forces it.
func levelTagger(w io.Writer, mode string) func(Level, string) string {
	r := lipgloss.NewRenderer(w)
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		r.SetColorProfile(termenv.ANSI)
	case "never":
		r.SetColorProfile(termenv.Ascii)
	}

	styles := map[Level]lipgloss.Style{
		zerolog.TraceLevel: r.NewStyle().Foreground(lipgloss.Color("5")),
		zerolog.DebugLevel: r.NewStyle().Foreground(lipgloss.Color("4")),
		zerolog.InfoLevel:  r.NewStyle().Foreground(lipgloss.Color("2")),
		zerolog.WarnLevel:  r.NewStyle().Foreground(lipgloss.Color("3")),
		zerolog.ErrorLevel: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
	return func(l Level, name string) string {
		st, ok := styles[l]
		if !ok {
			return name
		}
		return st.Render(name)
	}
}
