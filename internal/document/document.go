package document

import (
	"errors"
	"fmt"
	"os"

	"github.com/sant0-9/legalgen/internal/catalog"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrUnknownLanguage     = errors.New("unknown language")
	ErrMissingField        = errors.New("missing declared field")
	ErrUnexpectedField     = errors.New("field not declared by template")
	ErrKindMismatch        = errors.New("field value has the wrong kind")
)

// Request is a single document generation request. Build it with NewRequest.
// The field values are held privately and only read through Field and
// Fields, so a built request cannot be changed.
type Request struct {
	DocumentType string
	Language     string
	Template     *catalog.Template

	fields map[string]Value
}

// Field returns the value of a declared field.
func (r *Request) Field(name string) (Value, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Fields returns a copy of the field values.
func (r *Request) Fields() map[string]Value {
	return copyFields(r.fields)
}

func copyFields(fields map[string]Value) map[string]Value {
	out := make(map[string]Value, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// NewRequest checks docType and lang against the catalog and requires fields
// to hold exactly the template's declared fields, each of its declared kind.
func NewRequest(cat *catalog.Catalog, docType, lang string, fields map[string]Value) (*Request, error) {
	tpl, ok := cat.Template(docType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocumentType, docType)
	}
	if !cat.HasLanguage(lang) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}

	for _, f := range tpl.Fields {
		v, ok := fields[f.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingField, f.Name)
		}
		if v.Kind() != f.Kind {
			return nil, fmt.Errorf("%w: %q is %s, want %s", ErrKindMismatch, f.Name, v.Kind(), f.Kind)
		}
	}
	for name := range fields {
		if _, ok := tpl.Field(name); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnexpectedField, name)
		}
	}

	return &Request{
		DocumentType: docType,
		Language:     lang,
		Template:     tpl,
		fields:       copyFields(fields),
	}, nil
}

// requestFile is the on-disk shape of a batch request.
type requestFile struct {
	DocumentType string            `yaml:"document_type"`
	Language     string            `yaml:"language"`
	Fields       map[string]string `yaml:"fields"`
}

// ParseRequest decodes a YAML request and types its field values from the
// template.
func ParseRequest(cat *catalog.Catalog, data []byte) (*Request, error) {
	var rf requestFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	if rf.Language == "" {
		rf.Language = cat.Languages[0]
	}

	tpl, ok := cat.Template(rf.DocumentType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocumentType, rf.DocumentType)
	}

	fields := make(map[string]Value, len(rf.Fields))
	for name, raw := range rf.Fields {
		f, ok := tpl.Field(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnexpectedField, name)
		}
		v, err := ParseValue(f.Kind, raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields[name] = v
	}

	return NewRequest(cat, rf.DocumentType, rf.Language, fields)
}

// LoadRequestFile reads a YAML request from path.
func LoadRequestFile(cat *catalog.Catalog, path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRequest(cat, data)
}
