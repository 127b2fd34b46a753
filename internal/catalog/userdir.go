package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadDir reads user templates from dir, one template per .yaml or .yml
// file, in file name order. A missing dir yields no templates. Files that
// fail to load are skipped and reported together in the returned error.
func LoadDir(dir string) ([]Template, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var (
		templates []Template
		errs      []error
	)
	for _, name := range names {
		t, err := loadTemplateFile(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		// File name is the fallback when the template has no name
		if t.Name == "" {
			t.Name = strings.TrimSuffix(name, filepath.Ext(name))
		}
		templates = append(templates, t)
	}

	return templates, errors.Join(errs...)
}

func loadTemplateFile(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, err
	}
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Template{}, err
	}
	if len(t.Fields) == 0 {
		return Template{}, errors.New("template has no fields")
	}
	return t, nil
}

// Merge returns a new catalog with extra templates added. A template whose
// name matches an existing one replaces it in place; others are appended.
func (c *Catalog) Merge(extra []Template) (*Catalog, error) {
	out := &Catalog{
		Languages: append([]string(nil), c.Languages...),
		Templates: append([]Template(nil), c.Templates...),
	}

	for _, t := range extra {
		if existing, ok := out.Template(t.Name); ok {
			*existing = t
			continue
		}
		out.Templates = append(out.Templates, t)
	}

	if err := out.validate(); err != nil {
		return nil, err
	}
	return out, nil
}
