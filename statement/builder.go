// Package statement provides the incremental statement builder.
package statement

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sqlbind/sqlbind/convert"
)

// Builder accumulates literal SQL text and value fragments into a single
// statement, processed strictly in append order. A Builder is single-writer:
// it must not be shared across goroutines during construction.
type Builder struct {
	buf    strings.Builder
	params []Param
	index  map[string]int // lowercased name -> position in params
	tables []TempTable
	mode   convert.Mode
}

// Option configures a Builder.
type Option func(*Builder)

// WithMode sets the enum serialization mode applied to parameter values.
// The default is ModeStrings.
func WithMode(mode convert.Mode) Option {
	return func(b *Builder) { b.mode = mode }
}

// NewBuilder returns an empty Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{index: make(map[string]int)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Append writes literal SQL text verbatim.
func (b *Builder) Append(text string) *Builder {
	b.buf.WriteString(text)
	return b
}

// AppendParam adds value as an auto-named parameter and writes its marker in
// place of the hole. The candidate name is Parameter_<n> with n one past the
// number of parameters added so far.
func (b *Builder) AppendParam(value any) error {
	return b.appendParam(Param{Value: value})
}

// AppendNamed adds value as a parameter under the inferred name. If the name
// is already taken (case-insensitively), the smallest integer suffix from 2
// upwards that yields a free name is appended.
func (b *Builder) AppendNamed(name string, value any) error {
	return b.appendParam(Param{Name: name, Value: value})
}

func (b *Builder) appendParam(p Param) error {
	candidate := p.Name
	if candidate == "" {
		candidate = "Parameter_" + strconv.Itoa(len(b.params)+1)
	}
	if _, taken := b.index[strings.ToLower(candidate)]; taken {
		for n := 2; ; n++ {
			probe := candidate + strconv.Itoa(n)
			if _, taken := b.index[strings.ToLower(probe)]; !taken {
				candidate = probe
				break
			}
		}
	}

	value := p.Value
	if value != nil && convert.IsEnum(reflect.TypeOf(value)) {
		serialized, err := convert.Serialize(value, b.mode)
		if err != nil {
			return err
		}
		value = serialized
	}

	b.index[strings.ToLower(candidate)] = len(b.params)
	b.params = append(b.params, Param{Name: candidate, Value: value})
	b.buf.WriteString("@")
	b.buf.WriteString(candidate)
	return nil
}

// AppendTable records a temporary-table fragment as-is and writes its name.
// Duplicate table names are not resolved; they are the caller's
// responsibility.
func (b *Builder) AppendTable(t TempTable) error {
	if t.Name == "" {
		return &convert.ArgumentError{Message: "statement: temporary table fragment has no name"}
	}
	b.tables = append(b.tables, t)
	b.buf.WriteString(t.Name)
	return nil
}

// AppendValue formats value with its natural text representation, pads it to
// the requested width (negative width left-aligns with trailing padding),
// and writes it as literal SQL text. This path is for non-parameterized
// fragments such as identifiers and is not escaped; the caller owns its
// safety.
func (b *Builder) AppendValue(value any, width int) *Builder {
	text := fmt.Sprint(value)
	if width != 0 {
		text = pad(text, width)
	}
	b.buf.WriteString(text)
	return b
}

// Statement finalizes the builder into an immutable statement. The builder
// must not be used afterwards.
func (b *Builder) Statement() *Statement {
	params := make([]Param, len(b.params))
	copy(params, b.params)
	tables := make([]TempTable, len(b.tables))
	copy(tables, b.tables)
	return &Statement{code: b.buf.String(), params: params, tables: tables}
}

// pad space-pads text to the given alignment width. Positive width
// right-aligns with leading padding, negative left-aligns.
func pad(text string, width int) string {
	left := width < 0
	if left {
		width = -width
	}
	gap := width - utf8.RuneCountInString(text)
	if gap <= 0 {
		return text
	}
	spaces := strings.Repeat(" ", gap)
	if left {
		return text + spaces
	}
	return spaces + text
}
