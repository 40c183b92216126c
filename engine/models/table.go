package models

import "fmt"

// Accessor overrides how a field is read from or written to a row.
// Either func may be nil.
type Accessor struct {
	Get func(value any) any
	Set func(value any) (any, error)
}

// Table is a decoded CREATE TABLE statement.
type Table struct {
	Name       string
	Comment    string
	Attributes []*Attribute
	Accessors  map[string]Accessor
}

// Attribute returns the named attribute or nil.
func (t *Table) Attribute(name string) *Attribute {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// PrimaryKey returns the first primary key attribute or nil.
func (t *Table) PrimaryKey() *Attribute {
	for _, a := range t.Attributes {
		if a.IsPrimaryKey {
			return a
		}
	}
	return nil
}

// Names returns attribute names in column order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Attributes))
	for i, a := range t.Attributes {
		names[i] = a.Name
	}
	return names
}

// UpdateAttribute applies fn to the named attribute.
func (t *Table) UpdateAttribute(name string, fn func(*Attribute)) error {
	a := t.Attribute(name)
	if a == nil {
		return fmt.Errorf("%w: unknown attribute %q on table %q", ErrState, name, t.Name)
	}
	fn(a)
	return nil
}

// WithAccessor registers a get/set override for a field and returns t.
func (t *Table) WithAccessor(name string, acc Accessor) *Table {
	if t.Accessors == nil {
		t.Accessors = make(map[string]Accessor)
	}
	t.Accessors[name] = acc
	return t
}

// Get reads a field from a row, routing through its accessor when present.
func (t *Table) Get(row map[string]any, name string) any {
	v := row[name]
	if acc, ok := t.Accessors[name]; ok && acc.Get != nil {
		return acc.Get(v)
	}
	return v
}

// Set writes a field to a row, routing through its accessor when present.
// Readonly attributes are rejected.
func (t *Table) Set(row map[string]any, name string, value any) error {
	if a := t.Attribute(name); a != nil && a.IsReadonly {
		return fmt.Errorf("%w: attribute %q is readonly", ErrState, name)
	}
	if acc, ok := t.Accessors[name]; ok && acc.Set != nil {
		v, err := acc.Set(value)
		if err != nil {
			return err
		}
		value = v
	}
	row[name] = value
	return nil
}
