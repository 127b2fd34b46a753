package tui

import (
	"strings"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.center(styleTitle.Render("Help")))
	b.WriteString("\n\n")

	form := []string{
		"  Tab / Down     Next field",
		"  Shift+Tab / Up Previous field",
		"  Left / Right   Change language or document type",
		"  Enter          Generate document",
		"  Ctrl+S         Settings",
		"  Esc            Quit",
	}

	b.WriteString(a.center(styleSubtitle.Render("Form")))
	b.WriteString("\n")
	formBox := styleBox.
		Width(56).
		Render(strings.Join(form, "\n"))
	b.WriteString(a.center(formBox))
	b.WriteString("\n\n")

	result := []string{
		"  Up / Down      Scroll document",
		"  c              Copy to clipboard",
		"  n / Esc        Back to the form",
		"  r              Retry (after a failure)",
	}

	b.WriteString(a.center(styleSubtitle.Render("Result")))
	b.WriteString("\n")
	resultBox := styleBox.
		Width(56).
		Render(strings.Join(result, "\n"))
	b.WriteString(a.center(resultBox))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleSubtitle.Render("Dates use YYYY-MM-DD. Amounts are plain numbers, e.g. 1500.00")))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleStatusBar.Render("[Esc] Back")))

	return a.centerVertically(b.String())
}
