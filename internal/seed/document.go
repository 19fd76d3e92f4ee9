// Package seed defines the catalog import document. One document describes
// one module with its checklist sections and items; importing it replaces the
// template's entire section/item tree.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Document struct {
	Module   ModuleMeta `yaml:"module"`
	Sections []Section  `yaml:"sections"`
}

type ModuleMeta struct {
	Code        string `yaml:"code"`
	Title       string `yaml:"title"`
	Authority   string `yaml:"authority"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
}

type Section struct {
	Code        string `yaml:"code"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Weight      int    `yaml:"weight"`
	Items       []Item `yaml:"items"`
}

type Item struct {
	Code     string `yaml:"code"`
	Text     string `yaml:"text"`
	Evidence string `yaml:"evidence"`
	Weight   *int   `yaml:"weight"`
	Critical bool   `yaml:"critical"`
}

// Load reads and validates a document from path. A missing module code is a
// fatal input error; an empty section list is legal and imports nothing.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed document: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse seed document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) Validate() error {
	if d.Module.Code == "" {
		return fmt.Errorf("seed document: module code is required")
	}
	return nil
}

// ResolvedTitle falls back to the module code when no title was given.
func (m ModuleMeta) ResolvedTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.Code
}

func (m ModuleMeta) ResolvedAuthority() string {
	if m.Authority != "" {
		return m.Authority
	}
	return "PMDC"
}

func (m ModuleMeta) ResolvedVersion() string {
	if m.Version != "" {
		return m.Version
	}
	return "1.0"
}
