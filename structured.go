package fakedata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field describes one entry of a structured record
type Field struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	Params   Params `json:"params,omitempty" yaml:"params,omitempty"`
}

// Spec is the ordered shape of a record
type Spec []Field

// Validate rejects empty or duplicate field names and empty categories
func (s Spec) Validate() error {
	seen := make(map[string]int, len(s))
	for i, field := range s {
		if strings.TrimSpace(field.Name) == "" {
			return fmt.Errorf("%w: field #%d has no name", ErrInvalidSpec, i)
		}
		if strings.TrimSpace(field.Category) == "" {
			return fmt.Errorf("%w: field %q has no category", ErrInvalidSpec, field.Name)
		}
		if prev, dup := seen[field.Name]; dup {
			return fmt.Errorf("%w: field %q repeated at #%d and #%d", ErrInvalidSpec, field.Name, prev, i)
		}
		seen[field.Name] = i
	}
	return nil
}

type specDocument struct {
	Fields Spec `json:"fields" yaml:"fields"`
}

// ParseSpec decodes a YAML or JSON spec, picked from the extension of name. The
// document is either a list of fields or a mapping with a fields list.
func ParseSpec(name string, data []byte) (Spec, error) {
	var (
		spec Spec
		err  error
	)

	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".json":
		trimmed := bytes.TrimSpace(data)
		if bytes.HasPrefix(trimmed, []byte("[")) {
			err = json.Unmarshal(trimmed, &spec)
		} else {
			var doc specDocument
			err = json.Unmarshal(trimmed, &doc)
			spec = doc.Fields
		}
	case ".yaml", ".yml":
		var node yaml.Node
		if err = yaml.Unmarshal(data, &node); err != nil {
			break
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			err = node.Content[0].Decode(&spec)
		} else {
			var doc specDocument
			err = node.Decode(&doc)
			spec = doc.Fields
		}
	default:
		return nil, fmt.Errorf("%w: unsupported spec extension %q", ErrInvalidSpec, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidSpec, name, err)
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Record is a generated mapping from field name to value that remembers the
// field order of its spec.
type Record struct {
	fields []string
	values map[string]string
}

func newRecord(size int) *Record {
	return &Record{
		fields: make([]string, 0, size),
		values: make(map[string]string, size),
	}
}

func (r *Record) set(field, value string) {
	if _, ok := r.values[field]; !ok {
		r.fields = append(r.fields, field)
	}
	r.values[field] = value
}

// Fields returns the field names in spec order
func (r *Record) Fields() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.fields...)
}

func (r *Record) Get(field string) (string, bool) {
	if r == nil {
		return "", false
	}
	value, ok := r.values[field]
	return value, ok
}

func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.fields)
}

// Values returns the values in spec order
func (r *Record) Values() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.fields))
	for i, field := range r.fields {
		out[i] = r.values[field]
	}
	return out
}

// Map returns an unordered copy of the record
func (r *Record) Map() map[string]string {
	out := make(map[string]string, r.Len())
	if r == nil {
		return out
	}
	for field, value := range r.values {
		out[field] = value
	}
	return out
}

// MarshalJSON encodes the record as an object keyed in spec order
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.values[field])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the record as a mapping keyed in spec order
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, field := range r.fields {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: field},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.values[field]},
		)
	}
	return node, nil
}

// Build generates one record. Fields are produced in spec order; the first
// failing field aborts the build and no record is returned.
func (g *Generator) Build(spec Spec, locale string) (*Record, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return g.build(spec, locale)
}

// BuildMany generates n records with the same all or nothing semantics as Build
func (g *Generator) BuildMany(spec Spec, locale string, n int) ([]*Record, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative record count %d", ErrInvalidParam, n)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	records := make([]*Record, 0, n)
	for i := 0; i < n; i++ {
		record, err := g.build(spec, locale)
		if err != nil {
			return nil, fmt.Errorf("fakedata: record #%d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (g *Generator) build(spec Spec, locale string) (*Record, error) {
	record := newRecord(len(spec))
	for i, field := range spec {
		value, err := g.Generate(field.Category, locale, field.Params)
		if err != nil {
			return nil, &FieldError{Index: i, Field: field.Name, Category: field.Category, Err: err}
		}
		record.set(field.Name, value)
	}
	return record, nil
}

// RecordsJSON renders records as {"<root>": [...]} with four space indentation
func RecordsJSON(records []*Record, root string) ([]byte, error) {
	if root == "" {
		root = "records"
	}
	if records == nil {
		records = []*Record{}
	}
	return json.MarshalIndent(map[string][]*Record{root: records}, "", "    ")
}
