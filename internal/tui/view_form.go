package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderForm() string {
	var b strings.Builder
	s := a.state
	tpl := s.template()

	// Header
	b.WriteString(a.center(styleTitle.Render("Legal Document Generator")))
	b.WriteString("\n")
	b.WriteString(a.center(styleSubtitle.Render("Generate customized legal documents with ease.")))
	b.WriteString("\n\n")

	// Document configuration
	config := []string{
		a.renderSelector("Language", s.languageName(), s.focus == focusLanguage),
		a.renderSelector("Document", tpl.Name, s.focus == focusDocType),
	}
	configBox := styleBox.
		Width(a.boxWidth()).
		Render(strings.Join(config, "\n"))
	b.WriteString(a.center(configBox))
	b.WriteString("\n\n")

	// Fields
	b.WriteString(a.center(styleSubtitle.Render(fmt.Sprintf("%s Details", tpl.Name))))
	b.WriteString("\n")

	var fields []string
	for i, f := range tpl.Fields {
		label := styleLabel.Render(fmt.Sprintf("%-26s", truncate(f.Name, 26)))
		if s.focus == focusFirstField+i {
			label = styleFocused.Render(fmt.Sprintf("%-26s", truncate(f.Name, 26)))
		}
		fields = append(fields, label+" "+s.inputs[i].View())
		if msg, ok := s.fieldErrors[f.Name]; ok {
			fields = append(fields, styleFieldError.Render("  "+truncate(msg, a.boxWidth()-6)))
		}
	}
	if msg, ok := s.fieldErrors[""]; ok {
		fields = append(fields, styleFieldError.Render(truncate(msg, a.boxWidth()-4)))
	}

	fieldsBox := styleBox.
		Width(a.boxWidth()).
		BorderForeground(colorSecondary).
		Render(strings.Join(fields, "\n"))
	b.WriteString(a.center(fieldsBox))
	b.WriteString("\n\n")

	// Generate button
	button := "[ Generate Document ]"
	if s.focus == s.focusGenerate() {
		button = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorPrimary).
			Bold(true).
			Render(button)
	} else {
		button = styleSubtitle.Render(button)
	}
	b.WriteString(a.center(button))
	b.WriteString("\n\n")

	// Status bar
	status := styleStatusBar.Render("[Tab] Next  [<-/->] Change option  [Enter] Generate  [F1] Help  [Esc] Quit")
	b.WriteString(a.center(status))

	return a.centerVertically(b.String())
}

func (a *App) renderSelector(label, value string, focused bool) string {
	line := fmt.Sprintf("%-10s < %s >", label+":", value)
	if focused {
		return styleFocused.Render(line)
	}
	return styleLabel.Render(line)
}
