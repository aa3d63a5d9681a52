package tui

import (
	_ "embed"

	"editpath/internal/logging"

	"github.com/charmbracelet/glamour"
)

//go:embed help.md
var helpMarkdown string

// renderHelp renders the help screen for the given width. The raw markdown is
// shown when rendering fails.
func renderHelp(width int) string {
	log := logging.GetLogger("tui")
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width-2),
	)
	if err != nil {
		log.Debug().Err(err).Msg("help renderer unavailable")
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		log.Debug().Err(err).Msg("help render failed")
		return helpMarkdown
	}
	return out
}
