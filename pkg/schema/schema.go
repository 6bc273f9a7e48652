// Package schema defines the Go struct types for the scenario YAML
// document and provides strict YAML parsing.
package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the top-level scenario file: a named batch of scenarios,
// optionally sharing call defaults through a suite block.
type Document struct {
	Name      string        `yaml:"name"            json:"name"            jsonschema:"required"`
	Suite     *CallDoc      `yaml:"suite,omitempty" json:"suite,omitempty"`
	Scenarios []ScenarioDoc `yaml:"scenarios"       json:"scenarios"       jsonschema:"required"`
}

// ScenarioDoc declares one call and the expectations checked against it.
// Call fields left unset fall back to the document's suite defaults.
type ScenarioDoc struct {
	Name   string    `yaml:"name"           json:"name"           jsonschema:"required"`
	Call   *CallDoc  `yaml:"call,omitempty" json:"call,omitempty"`
	Args   []any     `yaml:"args,omitempty" json:"args,omitempty"`
	Expect ExpectDoc `yaml:"expect"         json:"expect"         jsonschema:"required"`
}

// CallDoc names the target to construct and the method to invoke.
// The target is resolved by its registered name; construct holds
// positional constructor arguments, and fields sets exported struct
// fields by name when the target has no constructor.
type CallDoc struct {
	Target    string         `yaml:"target,omitempty"    json:"target,omitempty"`
	Construct []any          `yaml:"construct,omitempty" json:"construct,omitempty"`
	Fields    map[string]any `yaml:"fields,omitempty"    json:"fields,omitempty"`
	Method    string         `yaml:"method,omitempty"    json:"method,omitempty"`
}

// ExpectDoc holds the declared expectations for one scenario. Absent
// fields are not checked at all. Throws references an error by its
// registered name.
type ExpectDoc struct {
	Return  *ValueDoc `yaml:"return,omitempty"  json:"return,omitempty"`
	Lives   bool      `yaml:"lives,omitempty"   json:"lives,omitempty"`
	Dies    bool      `yaml:"dies,omitempty"    json:"dies,omitempty"`
	Throws  string    `yaml:"throws,omitempty"  json:"throws,omitempty"`
	Stdout  *ValueDoc `yaml:"stdout,omitempty"  json:"stdout,omitempty"`
	Stderr  *ValueDoc `yaml:"stderr,omitempty"  json:"stderr,omitempty"`
	Mutates *ValueDoc `yaml:"mutates,omitempty" json:"mutates,omitempty"`
}

// Empty reports whether no expectation field is set at all.
func (e ExpectDoc) Empty() bool {
	return e.Return == nil && !e.Lives && !e.Dies && e.Throws == "" &&
		e.Stdout == nil && e.Stderr == nil && e.Mutates == nil
}

// LoadFile reads and parses a scenario YAML file with strict
// unknown-field rejection (yaml.v3 KnownFields).
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a scenario document from an io.Reader with strict
// unknown-field rejection.
func Load(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}
