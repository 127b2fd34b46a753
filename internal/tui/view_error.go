package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/legalgen/internal/writer"
)

func (a *App) renderError() string {
	var b strings.Builder
	res := a.state.result

	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render(writer.FailureNotice)
	b.WriteString(a.center(title))
	b.WriteString("\n\n")

	errMsg := res.Reason()
	if errMsg == "" {
		errMsg = "Unknown error"
	}

	errBox := styleBox.
		Width(a.boxWidth()).
		BorderForeground(colorError).
		Render(truncate(errMsg, 600))
	b.WriteString(a.center(errBox))
	b.WriteString("\n\n")

	if suggestions := suggestionsFor(res); len(suggestions) > 0 {
		suggBox := styleBox.
			Width(a.boxWidth()).
			BorderForeground(colorMuted).
			Render("Suggestions:\n" + strings.Join(suggestions, "\n"))
		b.WriteString(a.center(suggBox))
		b.WriteString("\n\n")
	}

	status := styleStatusBar.Render("[r] Retry  [Ctrl+S] Settings  [Esc] Back")
	b.WriteString(a.center(status))

	return a.centerVertically(b.String())
}

func suggestionsFor(res writer.Result) []string {
	errLower := strings.ToLower(res.Reason())

	switch {
	case res.Kind == writer.KindConfiguration && strings.Contains(errLower, "api key"):
		return []string{
			"Set OPENROUTER_API_KEY in your environment or .env file",
			"Or add api_key to ~/.config/legalgen/config.yaml",
		}
	case res.Kind == writer.KindEmptyResult:
		return []string{
			"The model returned no text",
			"Retry, or pick another model in settings",
		}
	case strings.Contains(errLower, "401") || strings.Contains(errLower, "unauthorized"):
		return []string{"Check that your API key is valid"}
	case strings.Contains(errLower, "429") || strings.Contains(errLower, "rate limit"):
		return []string{
			"You've hit the API rate limit",
			"Wait a moment and try again",
		}
	case strings.Contains(errLower, "timeout") || strings.Contains(errLower, "deadline"):
		return []string{
			"The request timed out",
			"Raise LEGALGEN_TIMEOUT or timeout in the config file",
		}
	case strings.Contains(errLower, "connect") || strings.Contains(errLower, "no such host"):
		return []string{"Check your internet connection"}
	}
	return nil
}
