package prompts

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sant0-9/legalgen/internal/catalog"
	"github.com/sant0-9/legalgen/internal/document"
)

//go:embed system.md
var systemPrompt string

// System is the fixed system-role message sent with every generation.
var System = strings.TrimSpace(systemPrompt)

// DateFormat renders dates as "March 05, 2025".
const DateFormat = "January 02, 2006"

// Build serializes a request into the user prompt: a header line naming the
// document type and language, then one "name: value" line per template field
// in declared order. It fails without output if a declared field is absent.
func Build(req *document.Request) (string, error) {
	if req == nil || req.Template == nil {
		return "", errors.New("prompt: request has no template")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %s in %s with the following details:\n", req.DocumentType, req.Language)

	for _, f := range req.Template.Fields {
		v, ok := req.Field(f.Name)
		if !ok {
			return "", fmt.Errorf("prompt: %w: %q", document.ErrMissingField, f.Name)
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(RenderValue(v))
		b.WriteString("\n")
	}

	return b.String(), nil
}

// RenderValue formats a single value for the prompt. Amounts always carry
// two decimal places and no currency symbol.
func RenderValue(v document.Value) string {
	switch v.Kind() {
	case catalog.KindDate:
		return v.Date().Format(DateFormat)
	case catalog.KindAmount:
		c := v.Cents()
		return strconv.FormatInt(c/100, 10) + "." + fmt.Sprintf("%02d", c%100)
	default:
		return v.Text()
	}
}
