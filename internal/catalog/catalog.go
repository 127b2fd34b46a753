package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var builtin []byte

// Kind tags the type of value a template field accepts.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindAmount
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindDate:
		return "date"
	case KindAmount:
		return "amount"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps the catalog file spelling to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "text":
		return KindText, nil
	case "date":
		return KindDate, nil
	case "amount":
		return KindAmount, nil
	default:
		return 0, fmt.Errorf("unknown field kind %q", s)
	}
}

func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseKind(node.Value)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Field is one declared input of a template.
type Field struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`
}

// Template is a document type and its ordered field list.
type Template struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`
}

// Field looks up a declared field by name.
func (t *Template) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Catalog holds the document templates and target languages. It is not
// modified after Load returns.
type Catalog struct {
	Languages []string   `yaml:"languages"`
	Templates []Template `yaml:"templates"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic("catalog: builtin templates: " + err.Error())
	}
	return c
}

// Parse decodes and checks a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Languages) == 0 {
		return errors.New("catalog declares no languages")
	}
	if len(c.Templates) == 0 {
		return errors.New("catalog declares no templates")
	}

	seenLang := make(map[string]bool, len(c.Languages))
	for _, l := range c.Languages {
		if l == "" {
			return errors.New("catalog: empty language name")
		}
		if seenLang[l] {
			return fmt.Errorf("catalog: duplicate language %q", l)
		}
		seenLang[l] = true
	}

	seenTpl := make(map[string]bool, len(c.Templates))
	for _, t := range c.Templates {
		if t.Name == "" {
			return errors.New("catalog: template without a name")
		}
		if seenTpl[t.Name] {
			return fmt.Errorf("catalog: duplicate template %q", t.Name)
		}
		seenTpl[t.Name] = true

		if len(t.Fields) == 0 {
			return fmt.Errorf("catalog: template %q has no fields", t.Name)
		}
		seenField := make(map[string]bool, len(t.Fields))
		for _, f := range t.Fields {
			if f.Name == "" {
				return fmt.Errorf("catalog: template %q has an unnamed field", t.Name)
			}
			if seenField[f.Name] {
				return fmt.Errorf("catalog: template %q repeats field %q", t.Name, f.Name)
			}
			seenField[f.Name] = true
		}
	}
	return nil
}

// Template returns the template for a document type.
func (c *Catalog) Template(name string) (*Template, bool) {
	for i := range c.Templates {
		if c.Templates[i].Name == name {
			return &c.Templates[i], true
		}
	}
	return nil, false
}

// HasLanguage reports whether lang is a supported target language.
func (c *Catalog) HasLanguage(lang string) bool {
	for _, l := range c.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// DocumentTypes lists template names in catalog order.
func (c *Catalog) DocumentTypes() []string {
	names := make([]string, len(c.Templates))
	for i, t := range c.Templates {
		names[i] = t.Name
	}
	return names
}
