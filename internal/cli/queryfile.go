package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// QueryFile is the YAML description of a query: where the records come
// from and the steps applied to them, in order.
//
//	source:
//	  file: people.yaml
//	steps:
//	  - where: {field: age, op: ge, value: 21}
//	  - order_by: [{field: age}, {field: name, desc: true}]
//	  - select: [name, age]
type QueryFile struct {
	Source Source `yaml:"source"`
	Steps  []Step `yaml:"steps"`
}

// Source names the records a query runs over: a YAML or JSON file holding
// a list of mappings, or a statement against a SQLite database.
type Source struct {
	File   string `yaml:"file,omitempty"`
	SQLite string `yaml:"sqlite,omitempty"`
	SQL    string `yaml:"sql,omitempty"`
}

// Step is one query operation. Exactly one field is set.
type Step struct {
	Where    *Condition `yaml:"where,omitempty"`
	Select   []string   `yaml:"select,omitempty"`
	OrderBy  []SortKey  `yaml:"order_by,omitempty"`
	GroupBy  string     `yaml:"group_by,omitempty"`
	Distinct bool       `yaml:"distinct,omitempty"`
	Skip     *int       `yaml:"skip,omitempty"`
	Take     *int       `yaml:"take,omitempty"`
}

// Condition compares a record field with a value.
type Condition struct {
	Field string `yaml:"field"`
	Op    string `yaml:"op"`
	Value any    `yaml:"value"`
}

// SortKey is one ordering criterion. Later keys break ties of earlier ones.
type SortKey struct {
	Field string `yaml:"field"`
	Desc  bool   `yaml:"desc,omitempty"`
}

var (
	ErrNoSource      = errors.New("no source: set a data file or a sqlite database")
	ErrTwoSources    = errors.New("data file and sqlite database are mutually exclusive")
	ErrNoStatement   = errors.New("sqlite source needs a sql statement")
	ErrStepAmbiguous = errors.New("step must set exactly one operation")
)

// LoadQueryFile reads and validates a query file. Unknown keys are errors.
// A relative source file is resolved against the query file's directory.
func LoadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read query file: %w", err)
	}

	var qf QueryFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&qf); err != nil {
		return nil, fmt.Errorf("parse query file %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if qf.Source.File != "" && !filepath.IsAbs(qf.Source.File) {
		qf.Source.File = filepath.Join(dir, qf.Source.File)
	}
	if qf.Source.SQLite != "" && !filepath.IsAbs(qf.Source.SQLite) {
		qf.Source.SQLite = filepath.Join(dir, qf.Source.SQLite)
	}

	for i, step := range qf.Steps {
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &qf, nil
}

// Validate reports whether the source names exactly one origin.
func (s Source) Validate() error {
	switch {
	case s.File == "" && s.SQLite == "":
		return ErrNoSource
	case s.File != "" && s.SQLite != "":
		return ErrTwoSources
	case s.SQLite != "" && s.SQL == "":
		return ErrNoStatement
	}
	return nil
}

// Validate reports whether the step sets exactly one well-formed operation.
func (s Step) Validate() error {
	set := 0
	for _, ok := range []bool{
		s.Where != nil,
		len(s.Select) > 0,
		len(s.OrderBy) > 0,
		s.GroupBy != "",
		s.Distinct,
		s.Skip != nil,
		s.Take != nil,
	} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return ErrStepAmbiguous
	}

	switch {
	case s.Where != nil:
		if s.Where.Field == "" {
			return errors.New("where: field is required")
		}
		if _, ok := operators[s.Where.Op]; !ok {
			return fmt.Errorf("where: unknown operator %q", s.Where.Op)
		}
	case len(s.OrderBy) > 0:
		for _, key := range s.OrderBy {
			if key.Field == "" {
				return errors.New("order_by: field is required")
			}
		}
	case s.Skip != nil && *s.Skip < 0:
		return fmt.Errorf("skip: must be >= 0, got %d", *s.Skip)
	case s.Take != nil && *s.Take < 0:
		return fmt.Errorf("take: must be >= 0, got %d", *s.Take)
	}
	return nil
}
