package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sant0-9/legalgen/internal/catalog"
	"github.com/sant0-9/legalgen/internal/config"
	"github.com/sant0-9/legalgen/internal/document"
	"github.com/sant0-9/legalgen/internal/writer"
)

// Focus slots ahead of the template fields. The generate button follows the
// last field.
const (
	focusLanguage = iota
	focusDocType
	focusFirstField
)

type state struct {
	// Config
	config  *config.Config
	catalog *catalog.Catalog
	writer  *writer.Writer

	// Form
	language    int
	docType     int
	focus       int
	inputs      []textinput.Model
	values      map[string]string
	fieldErrors map[string]string

	// Processing
	generating  bool
	spinner     spinner.Model
	lastRequest *document.Request

	// Result
	result   writer.Result
	viewport viewport.Model
	notice   string

	// Settings
	settingsMode     string
	settingsSelected int
}

func newState(cfg *config.Config, cat *catalog.Catalog, w *writer.Writer) *state {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleSpinner

	s := &state{
		config:      cfg,
		catalog:     cat,
		writer:      w,
		values:      make(map[string]string),
		fieldErrors: make(map[string]string),
		spinner:     sp,
		viewport:    viewport.New(70, 20),
	}
	s.resetInputs()
	return s
}
