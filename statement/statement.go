// Package statement composes parameterized SQL statements from mixed literal
// text and value fragments, auto-naming and de-duplicating parameters and
// tracking temporary-table fragments.
package statement

import (
	"reflect"
	"strings"
)

// Param is one named statement parameter.
type Param struct {
	// Name is empty on input arguments to request an auto-assigned name,
	// and always set on parameters read back from a Statement.
	Name string
	// Value is the bound value; nil is the explicit absence marker.
	Value any
}

// P marks value as an anonymous parameter argument for Compose.
func P(value any) Param {
	return Param{Value: value}
}

// N marks value as a parameter argument carrying an inferred name.
func N(name string, value any) Param {
	return Param{Name: name, Value: value}
}

// TempTable is a named value sequence destined to be materialized as a
// temporary table by the transport layer.
type TempTable struct {
	Name   string
	Values []any
	// Elem is the element type of the value sequence.
	Elem reflect.Type
}

// Table builds a TempTable from a typed value slice, recording the slice's
// element type.
func Table[V any](name string, values []V) TempTable {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return TempTable{Name: name, Values: vs, Elem: reflect.TypeOf((*V)(nil)).Elem()}
}

// Statement is a composed SQL statement: code, named parameters in
// appearance order, and temporary-table fragments. A Statement is immutable
// once built.
type Statement struct {
	code   string
	params []Param
	tables []TempTable
}

// New wraps plain SQL text with no holes as a zero-parameter statement.
func New(code string) *Statement {
	return &Statement{code: code}
}

// Code returns the assembled SQL text.
func (s *Statement) Code() string {
	return s.code
}

// Params returns the named parameters in appearance order.
func (s *Statement) Params() []Param {
	out := make([]Param, len(s.params))
	copy(out, s.params)
	return out
}

// Tables returns the temporary-table fragments in appearance order.
func (s *Statement) Tables() []TempTable {
	out := make([]TempTable, len(s.tables))
	copy(out, s.tables)
	return out
}

// Param returns the value bound under name, matched case-insensitively.
func (s *Statement) Param(name string) (any, bool) {
	for _, p := range s.params {
		if strings.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}
	return nil, false
}

// Equal reports whether two statements have the same code, the same
// parameter set regardless of insertion order, and the same temporary-table
// sequence.
func (s *Statement) Equal(o *Statement) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}
	if s.code != o.code || len(s.params) != len(o.params) || len(s.tables) != len(o.tables) {
		return false
	}

	// Parameter names are unique case-insensitively, so set comparison
	// reduces to a keyed lookup.
	theirs := make(map[string]any, len(o.params))
	for _, p := range o.params {
		theirs[strings.ToLower(p.Name)] = p.Value
	}
	for _, p := range s.params {
		v, ok := theirs[strings.ToLower(p.Name)]
		if !ok || !reflect.DeepEqual(p.Value, v) {
			return false
		}
	}

	for i, tab := range s.tables {
		other := o.tables[i]
		if tab.Name != other.Name || tab.Elem != other.Elem || !reflect.DeepEqual(tab.Values, other.Values) {
			return false
		}
	}
	return true
}
