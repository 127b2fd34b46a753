package tui

import (
	"context"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sant0-9/legalgen/internal/catalog"
	"github.com/sant0-9/legalgen/internal/config"
	"github.com/sant0-9/legalgen/internal/document"
	"github.com/sant0-9/legalgen/internal/llm"
	"github.com/sant0-9/legalgen/internal/writer"
)

type view int

const (
	viewForm view = iota
	viewProcessing
	viewResult
	viewError
	viewSettings
	viewHelp
)

type App struct {
	width    int
	height   int
	view     view
	state    *state
	logger   *slog.Logger
	quitting bool
}

func NewApp(cfg *config.Config, cat *catalog.Catalog, w *writer.Writer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		view:   viewForm,
		state:  newState(cfg, cat, w),
		logger: logger,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.WindowSize(),
		textinput.Blink,
		a.state.setFocus(focusFirstField),
	)
}

type generatedMsg struct{ result writer.Result }
type copiedMsg struct{ err error }
type savedMsg struct{ err error }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := a.handleKey(msg)
		if handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.state.viewport.Width = min(76, max(msg.Width-4, 20))
		a.state.viewport.Height = max(msg.Height-10, 5)

	case generatedMsg:
		a.state.generating = false
		a.state.result = msg.result
		a.state.notice = ""
		if msg.result.OK() {
			a.state.viewport.SetContent(msg.result.Text)
			a.state.viewport.GotoTop()
			a.view = viewResult
		} else {
			a.view = viewError
		}
		return a, nil

	case copiedMsg:
		if msg.err != nil {
			a.state.notice = "Copy failed: " + msg.err.Error()
		} else {
			a.state.notice = "Copied to clipboard"
		}
		return a, nil

	case savedMsg:
		if msg.err != nil {
			a.logger.Error("config.save_failed", "error", msg.err)
			a.state.notice = "Could not save settings: " + msg.err.Error()
		} else {
			a.state.notice = "Settings saved"
		}
		return a, nil

	case spinner.TickMsg:
		if a.state.generating {
			var cmd tea.Cmd
			a.state.spinner, cmd = a.state.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	switch a.view {
	case viewForm:
		if in := a.state.focusedInput(); in != nil {
			var cmd tea.Cmd
			*in, cmd = in.Update(msg)
			cmds = append(cmds, cmd)
		}
	case viewResult:
		var cmd tea.Cmd
		a.state.viewport, cmd = a.state.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// handleKey returns handled=false when the key should reach the focused
// component (text input or viewport).
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, keys.Quit) {
		a.quitting = true
		return tea.Quit, true
	}

	switch a.view {
	case viewForm:
		return a.handleFormKey(msg)
	case viewProcessing:
		// no cancellation once a request is in flight
		return nil, true
	case viewResult:
		return a.handleResultKey(msg)
	case viewError:
		return a.handleErrorKey(msg)
	case viewSettings:
		return a.handleSettingsKey(msg), true
	case viewHelp:
		if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Help) {
			a.view = viewForm
		}
		return nil, true
	}
	return nil, false
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	s := a.state

	switch {
	case key.Matches(msg, keys.Back):
		a.quitting = true
		return tea.Quit, true

	case key.Matches(msg, keys.Help):
		a.view = viewHelp
		return nil, true

	case key.Matches(msg, keys.Settings):
		s.settingsMode = ""
		s.notice = ""
		a.view = viewSettings
		return nil, true

	case key.Matches(msg, keys.Next):
		return s.setFocus(s.focus + 1), true

	case key.Matches(msg, keys.Prev):
		return s.setFocus(s.focus - 1), true

	case key.Matches(msg, keys.Left), key.Matches(msg, keys.Right):
		delta := 1
		if key.Matches(msg, keys.Left) {
			delta = -1
		}
		switch s.focus {
		case focusLanguage:
			s.cycleLanguage(delta)
			return nil, true
		case focusDocType:
			s.cycleDocType(delta)
			return nil, true
		}
		return nil, false

	case key.Matches(msg, keys.Enter):
		return a.submit(), true
	}

	return nil, false
}

func (a *App) submit() tea.Cmd {
	s := a.state
	if s.generating {
		return nil
	}
	req := s.buildRequest()
	if req == nil {
		return nil
	}
	return a.startGeneration(req)
}

func (a *App) startGeneration(req *document.Request) tea.Cmd {
	s := a.state
	s.generating = true
	s.lastRequest = req
	a.view = viewProcessing

	a.logger.Info("tui.generate",
		"document_type", req.DocumentType,
		"language", req.Language,
	)

	w := s.writer
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		return generatedMsg{result: w.Write(context.Background(), req)}
	})
}

func (a *App) handleResultKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Copy):
		text := a.state.result.Text
		return func() tea.Msg {
			return copiedMsg{err: clipboard.WriteAll(text)}
		}, true

	case key.Matches(msg, keys.New), key.Matches(msg, keys.Back):
		a.backToForm()
		return nil, true
	}
	return nil, false
}

func (a *App) handleErrorKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Retry):
		if a.state.lastRequest != nil {
			return a.startGeneration(a.state.lastRequest), true
		}
		return nil, true

	case key.Matches(msg, keys.Settings):
		a.state.settingsMode = ""
		a.view = viewSettings
		return nil, true

	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
		a.backToForm()
		return nil, true
	}
	return nil, true
}

func (a *App) backToForm() {
	a.state.notice = ""
	a.view = viewForm
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state

	if s.settingsMode == "model" {
		provider := config.GetProvider(s.config.Provider)
		if provider == nil || len(provider.Models) == 0 {
			s.settingsMode = ""
			return nil
		}
		switch {
		case key.Matches(msg, keys.Back):
			s.settingsMode = ""
		case key.Matches(msg, keys.Up):
			if s.settingsSelected > 0 {
				s.settingsSelected--
			}
		case key.Matches(msg, keys.Down):
			if s.settingsSelected < len(provider.Models)-1 {
				s.settingsSelected++
			}
		case key.Matches(msg, keys.Enter):
			s.settingsMode = ""
			return a.setModel(provider.Models[s.settingsSelected])
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.Back):
		a.backToForm()
	case key.Matches(msg, keys.Model):
		s.settingsMode = "model"
		s.settingsSelected = 0
		if p := config.GetProvider(s.config.Provider); p != nil {
			for i, m := range p.Models {
				if m == s.config.Model {
					s.settingsSelected = i
				}
			}
		}
	}
	return nil
}

// setModel switches the model for subsequent generations and persists it.
func (a *App) setModel(model string) tea.Cmd {
	s := a.state
	s.config.Model = model

	provider, err := llm.NewProvider(s.config, a.logger)
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	s.writer = writer.NewWriter(provider, s.config.Model, a.logger)

	cfg := *s.config
	return func() tea.Msg {
		return savedMsg{err: cfg.Save()}
	}
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewForm:
		return a.renderForm()
	case viewProcessing:
		return a.renderProcessing()
	case viewResult:
		return a.renderResult()
	case viewError:
		return a.renderError()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	default:
		return a.renderForm()
	}
}
