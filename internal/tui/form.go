package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sant0-9/legalgen/internal/catalog"
	"github.com/sant0-9/legalgen/internal/document"
)

// today is swapped in tests.
var today = time.Now

func (s *state) template() *catalog.Template {
	return &s.catalog.Templates[s.docType]
}

func (s *state) languageName() string {
	return s.catalog.Languages[s.language]
}

func (s *state) focusGenerate() int {
	return focusFirstField + len(s.inputs)
}

// resetInputs rebuilds the text inputs for the selected template. Values
// typed earlier are kept by field name, so shared fields like "Start Date"
// survive a document type switch.
func (s *state) resetInputs() {
	s.saveValues()

	tpl := s.template()
	s.inputs = make([]textinput.Model, len(tpl.Fields))
	for i, f := range tpl.Fields {
		in := textinput.New()
		in.CharLimit = 500
		in.Width = 50
		in.Prompt = ""

		switch f.Kind {
		case catalog.KindDate:
			in.Placeholder = "YYYY-MM-DD"
			in.CharLimit = len(document.DateLayout)
		case catalog.KindAmount:
			in.Placeholder = "0.00"
			in.CharLimit = 20
		default:
			in.Placeholder = f.Name
		}

		if v, ok := s.values[f.Name]; ok {
			in.SetValue(v)
		} else if f.Kind == catalog.KindDate {
			in.SetValue(today().Format(document.DateLayout))
		}
		s.inputs[i] = in
	}

	s.fieldErrors = make(map[string]string)
	if s.focus > s.focusGenerate() {
		s.focus = s.focusGenerate()
	}
}

func (s *state) saveValues() {
	if len(s.inputs) == 0 {
		return
	}
	tpl := s.template()
	for i, in := range s.inputs {
		if i < len(tpl.Fields) {
			s.values[tpl.Fields[i].Name] = in.Value()
		}
	}
}

// setFocus moves the cursor, wrapping around the form.
func (s *state) setFocus(i int) tea.Cmd {
	n := s.focusGenerate() + 1
	s.focus = ((i % n) + n) % n

	var cmd tea.Cmd
	for j := range s.inputs {
		if j == s.focus-focusFirstField {
			cmd = s.inputs[j].Focus()
		} else {
			s.inputs[j].Blur()
		}
	}
	return cmd
}

func (s *state) focusedInput() *textinput.Model {
	idx := s.focus - focusFirstField
	if idx < 0 || idx >= len(s.inputs) {
		return nil
	}
	return &s.inputs[idx]
}

func (s *state) cycleLanguage(delta int) {
	n := len(s.catalog.Languages)
	s.language = ((s.language+delta)%n + n) % n
}

func (s *state) cycleDocType(delta int) {
	s.saveValues()
	n := len(s.catalog.Templates)
	s.docType = ((s.docType+delta)%n + n) % n
	s.inputs = nil
	s.resetInputs()
}

// buildRequest parses every input against its declared kind. On failure the
// per-field messages are left in fieldErrors and nil is returned.
func (s *state) buildRequest() *document.Request {
	tpl := s.template()
	s.fieldErrors = make(map[string]string)

	fields := make(map[string]document.Value, len(tpl.Fields))
	for i, f := range tpl.Fields {
		v, err := document.ParseValue(f.Kind, s.inputs[i].Value())
		if err != nil {
			s.fieldErrors[f.Name] = err.Error()
			continue
		}
		fields[f.Name] = v
	}
	if len(s.fieldErrors) > 0 {
		return nil
	}

	req, err := document.NewRequest(s.catalog, tpl.Name, s.languageName(), fields)
	if err != nil {
		s.fieldErrors[""] = err.Error()
		return nil
	}
	return req
}
