package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/legalgen/internal/writer"
)

func (a *App) renderResult() string {
	var b strings.Builder
	s := a.state

	title := lipgloss.NewStyle().
		Foreground(colorSuccess).
		Bold(true).
		Render(writer.SuccessNotice)
	b.WriteString(a.center(title))
	b.WriteString("\n")

	if req := s.lastRequest; req != nil {
		info := fmt.Sprintf("%s  |  %s  |  %s", req.DocumentType, req.Language, s.config.Model)
		b.WriteString(a.center(styleSubtitle.Render(truncate(info, a.boxWidth()))))
		b.WriteString("\n\n")
	}

	resultBox := styleBox.
		BorderForeground(colorPrimary).
		Render(s.viewport.View())
	b.WriteString(a.center(resultBox))
	b.WriteString("\n")

	scroll := styleSubtitle.Render(fmt.Sprintf("%3.f%%", s.viewport.ScrollPercent()*100))
	b.WriteString(a.center(scroll))
	b.WriteString("\n")

	if s.notice != "" {
		b.WriteString(a.center(styleSubtitle.Render(s.notice)))
		b.WriteString("\n")
	}

	status := styleStatusBar.Render("[Up/Down] Scroll  [c] Copy  [n] New document  [Ctrl+C] Quit")
	b.WriteString(a.center(status))

	return b.String()
}
