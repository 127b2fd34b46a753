package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/legalgen/internal/config"
)

func (a *App) renderSettings() string {
	switch a.state.settingsMode {
	case "model":
		return a.renderSettingsModel()
	default:
		return a.renderSettingsMain()
	}
}

func (a *App) renderSettingsMain() string {
	var b strings.Builder
	cfg := a.state.config

	b.WriteString(a.center(styleTitle.Render("Settings")))
	b.WriteString("\n\n")

	providerName := cfg.Provider
	if p := config.GetProvider(cfg.Provider); p != nil {
		providerName = p.Name
	}

	configFile := "(none)"
	if path, err := config.ConfigPath(); err == nil {
		configFile = path
		if !config.Exists() {
			configFile += " (not created)"
		}
	}

	configLines := []string{
		fmt.Sprintf("  Provider: %s", providerName),
		fmt.Sprintf("  Model:    %s", cfg.Model),
		fmt.Sprintf("  Endpoint: %s", truncate(cfg.BaseURL, 40)),
		fmt.Sprintf("  API Key:  %s", cfg.MaskedAPIKey()),
		fmt.Sprintf("  Timeout:  %s", cfg.Timeout),
		"",
		fmt.Sprintf("  Config:   %s", truncate(configFile, 40)),
	}

	configBox := styleBox.
		Width(a.boxWidth()).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(a.center(configBox))
	b.WriteString("\n\n")

	actionsBox := styleBox.
		Width(a.boxWidth()).
		Render("  [m] Change model")
	b.WriteString(a.center(actionsBox))
	b.WriteString("\n\n")

	if a.state.notice != "" {
		b.WriteString(a.center(styleSubtitle.Render(a.state.notice)))
		b.WriteString("\n\n")
	}

	b.WriteString(a.center(styleStatusBar.Render("[Esc] Back")))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsModel() string {
	var b strings.Builder
	cfg := a.state.config

	b.WriteString(a.center(styleTitle.Render("Select Model")))
	b.WriteString("\n\n")

	provider := config.GetProvider(cfg.Provider)
	if provider == nil || len(provider.Models) == 0 {
		b.WriteString(a.center(styleSubtitle.Render("No preset models for this provider")))
		return a.centerVertically(b.String())
	}

	b.WriteString(a.center(styleSubtitle.Render(fmt.Sprintf("Provider: %s", provider.Name))))
	b.WriteString("\n\n")

	var lines []string
	for i, model := range provider.Models {
		cursor := "  "
		if i == a.state.settingsSelected {
			cursor = "> "
		}
		current := ""
		if model == cfg.Model {
			current = " (current)"
		}
		line := fmt.Sprintf("%s%s%s", cursor, model, current)
		if i == a.state.settingsSelected {
			line = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(line)
		}
		lines = append(lines, line)
	}

	listBox := styleBox.
		Width(a.boxWidth()).
		Render(strings.Join(lines, "\n"))
	b.WriteString(a.center(listBox))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")))

	return a.centerVertically(b.String())
}
