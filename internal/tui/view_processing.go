package tui

import (
	"fmt"
	"strings"
)

func (a *App) renderProcessing() string {
	var b strings.Builder
	s := a.state

	b.WriteString(a.center(styleTitle.Render("Generating")))
	b.WriteString("\n\n")

	if req := s.lastRequest; req != nil {
		info := fmt.Sprintf("%s in %s", req.DocumentType, req.Language)
		b.WriteString(a.center(styleSubtitle.Render(truncate(info, 60))))
		b.WriteString("\n\n")
	}

	line := fmt.Sprintf("%s Waiting for %s (%s)...", s.spinner.View(), s.config.Provider, s.config.Model)
	box := styleBox.
		Width(a.boxWidth()).
		Render(line)
	b.WriteString(a.center(box))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleStatusBar.Render("[Ctrl+C] Quit")))

	return a.centerVertically(b.String())
}
