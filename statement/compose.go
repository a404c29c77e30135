// Package statement implements template composition: literal SQL mixed with
// {} holes that consume the argument list in order.
package statement

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/sqlbind/sqlbind/convert"
)

// --- Participle grammar ---
// A template is a flat sequence of literal text runs, {{ }} escapes, and
// {name,width} holes.

// template is the top-level grammar for a statement template.
type template struct {
	Fragments []fragment `parser:"@@*"`
}

// fragment is one literal run, one brace escape, or one hole token.
type fragment struct {
	Escape string `parser:"  @Escape"`
	Hole   string `parser:"| @Hole"`
	Text   string `parser:"| @Text"`
}

var templateLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Escape", Pattern: `\{\{|\}\}`},
	{Name: "Hole", Pattern: `\{[^{}]*\}`},
	{Name: "Text", Pattern: `[^{}]+`},
})

var templateParser = participle.MustBuild[template](
	participle.Lexer(templateLexer),
)

var holeName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// hole is the parsed content of one {name,width} token. Both parts are
// optional: {} is an anonymous hole, {Name} carries an inferred parameter
// name, {,width} requests alignment padding for the general value path.
type hole struct {
	name  string
	width int
}

// parseHole splits a hole token into its name and alignment width.
func parseHole(tok string) (hole, error) {
	content := tok[1 : len(tok)-1]
	var h hole

	name, widthPart, hasWidth := strings.Cut(content, ",")
	if name != "" {
		if !holeName.MatchString(name) {
			return hole{}, &convert.ArgumentError{Message: fmt.Sprintf("statement: invalid hole name %q", name)}
		}
		h.name = name
	}
	if hasWidth {
		width, err := strconv.Atoi(strings.TrimSpace(widthPart))
		if err != nil {
			return hole{}, &convert.ArgumentError{Message: fmt.Sprintf("statement: invalid hole width %q", widthPart)}
		}
		h.width = width
	}
	return h, nil
}

// Compose builds a statement from a template. Literal text is appended
// verbatim and each {} hole consumes the next argument, processed strictly
// in template order:
//
//   - a Param argument becomes a named parameter marker, auto-named
//     Parameter_<n> when neither the Param nor the hole carries a name;
//   - a TempTable argument is recorded as a temporary-table fragment and its
//     name written into the code;
//   - any other argument under a named hole becomes a parameter under that
//     name;
//   - any other argument under an anonymous hole is written into the code as
//     unescaped literal text, padded to the hole's width if one is given.
//
// Literal braces are written as {{ and }}. A template without holes is a
// valid zero-parameter statement.
func Compose(tmpl string, args ...any) (*Statement, error) {
	return compose(NewBuilder(), tmpl, args)
}

// ComposeWithMode is Compose with an explicit enum serialization mode for
// parameter values.
func ComposeWithMode(mode convert.Mode, tmpl string, args ...any) (*Statement, error) {
	return compose(NewBuilder(WithMode(mode)), tmpl, args)
}

// MustCompose is a helper that calls Compose and panics if an error occurs.
func MustCompose(tmpl string, args ...any) *Statement {
	s, err := Compose(tmpl, args...)
	if err != nil {
		panic(err)
	}
	return s
}

func compose(b *Builder, tmpl string, args []any) (*Statement, error) {
	parsed, err := templateParser.ParseString("", tmpl)
	if err != nil {
		return nil, &convert.ArgumentError{Message: fmt.Sprintf("statement: parse template: %v", err)}
	}

	next := 0
	for _, frag := range parsed.Fragments {
		switch {
		case frag.Escape != "":
			b.Append(frag.Escape[:1])
		case frag.Hole != "":
			h, err := parseHole(frag.Hole)
			if err != nil {
				return nil, err
			}
			if next >= len(args) {
				return nil, &convert.ArgumentError{Message: fmt.Sprintf("statement: template has more holes than arguments (%d)", len(args))}
			}
			if err := fill(b, h, args[next]); err != nil {
				return nil, err
			}
			next++
		default:
			b.Append(frag.Text)
		}
	}
	if next != len(args) {
		return nil, &convert.ArgumentError{Message: fmt.Sprintf("statement: template has %d holes for %d arguments", next, len(args))}
	}
	return b.Statement(), nil
}

// fill resolves one hole against its argument.
func fill(b *Builder, h hole, arg any) error {
	switch a := arg.(type) {
	case Param:
		if a.Name == "" && h.name != "" {
			a.Name = h.name
		}
		return b.appendParam(a)
	case TempTable:
		return b.AppendTable(a)
	default:
		if h.name != "" {
			return b.AppendNamed(h.name, arg)
		}
		b.AppendValue(arg, h.width)
		return nil
	}
}
