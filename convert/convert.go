// Package convert turns arbitrary runtime values into strongly typed target
// values, including single-character strings and registered enumerated types.
package convert

import (
	"fmt"
	"reflect"
	"time"
	"unicode/utf8"

	"github.com/spf13/cast"
)

// Char is the single-character target shape. Converting a string to Char
// succeeds only when the string holds exactly one character.
type Char rune

var (
	charType = reflect.TypeOf((*Char)(nil)).Elem()
	timeType = reflect.TypeOf((*time.Time)(nil)).Elem()
)

// To converts value to the target type T.
//
// Conversion proceeds in a fixed precedence order: absence, identity, the
// single-character shape, pointer-target unwrapping, enum coercion for
// registered enum types, then a general locale-independent scalar
// conversion. Scalar conversions that are unsupported, out of range, or
// malformed fail with a ConversionError wrapping the underlying failure.
func To[T any](value any) (T, error) {
	var zero T
	t := reflect.TypeOf((*T)(nil)).Elem()
	if value == nil {
		if acceptsAbsence(t) {
			return zero, nil
		}
		return zero, &ConversionError{Value: nil, Target: t, Reason: "nil value for a target that does not accept absence"}
	}
	if v, ok := value.(T); ok {
		return v, nil
	}
	out, err := toType(value, t)
	if err != nil {
		return zero, err
	}
	return out.(T), nil
}

// toType is the non-generic conversion core. value is never nil here, and the
// returned value's dynamic type is exactly t.
func toType(value any, t reflect.Type) (any, error) {
	if reflect.TypeOf(value) == t {
		return value, nil
	}

	// A non-nil pointer source converts as its pointee.
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			if t.Kind() == reflect.Pointer {
				return reflect.Zero(t).Interface(), nil
			}
			return nil, &ConversionError{Value: value, Target: t, Reason: "nil value for a target that does not accept absence"}
		}
		value = rv.Elem().Interface()
		if reflect.TypeOf(value) == t {
			return value, nil
		}
	}

	switch {
	case t == charType:
		return toChar(value)
	case t.Kind() == reflect.Pointer:
		inner, err := toType(value, t.Elem())
		if err != nil {
			return nil, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(reflect.ValueOf(inner))
		return p.Interface(), nil
	case IsEnum(t):
		return toEnumType(value, t)
	}

	return toScalar(value, t)
}

// toChar converts value to the single-character shape. String input must hold
// exactly one character; any other input converts as a numeric code point.
func toChar(value any) (any, error) {
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.String {
		s := rv.String()
		if utf8.RuneCountInString(s) != 1 {
			return nil, &ConversionError{Value: s, Target: charType, Reason: fmt.Sprintf("string %q does not hold exactly one character", s)}
		}
		r, _ := utf8.DecodeRuneInString(s)
		return Char(r), nil
	}
	n, err := cast.ToInt64E(value)
	if err != nil {
		return nil, &ConversionError{Value: value, Target: charType, Cause: err}
	}
	if n < 0 || n > utf8.MaxRune {
		return nil, &ConversionError{Value: value, Target: charType, Reason: "value is outside the character range"}
	}
	return Char(n), nil
}

// toScalar performs the general locale-independent scalar conversion.
func toScalar(value any, t reflect.Type) (any, error) {
	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Bool:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return nil, &ConversionError{Value: value, Target: t, Cause: err}
		}
		out.SetBool(b)
	case reflect.String:
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, &ConversionError{Value: value, Target: t, Cause: err}
		}
		out.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := cast.ToInt64E(value)
		if err != nil {
			return nil, &ConversionError{Value: value, Target: t, Cause: err}
		}
		if out.OverflowInt(n) {
			return nil, &ConversionError{Value: value, Target: t, Reason: "value is out of range"}
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := cast.ToUint64E(value)
		if err != nil {
			return nil, &ConversionError{Value: value, Target: t, Cause: err}
		}
		if out.OverflowUint(u) {
			return nil, &ConversionError{Value: value, Target: t, Reason: "value is out of range"}
		}
		out.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return nil, &ConversionError{Value: value, Target: t, Cause: err}
		}
		if out.OverflowFloat(f) {
			return nil, &ConversionError{Value: value, Target: t, Reason: "value is out of range"}
		}
		out.SetFloat(f)
	case reflect.Struct:
		if t != timeType {
			return nil, &ConversionError{Value: value, Target: t, Reason: "unsupported target shape"}
		}
		tm, err := cast.ToTimeE(value)
		if err != nil {
			return nil, &ConversionError{Value: value, Target: t, Cause: err}
		}
		return tm, nil
	default:
		return nil, &ConversionError{Value: value, Target: t, Reason: "unsupported target shape"}
	}
	return out.Interface(), nil
}

// acceptsAbsence reports whether the target type can represent a nil input.
func acceptsAbsence(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	}
	return false
}
