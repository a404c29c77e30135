// Package convert maintains a registry of enumerated types and coerces and
// serializes their values.
package convert

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Mode selects how enum values are written into SQL parameters.
type Mode int32

const (
	// ModeStrings writes an enum value as its member name.
	ModeStrings Mode = iota
	// ModeIntegers writes an enum value as its underlying numeric code.
	ModeIntegers
)

// Member is a single defined member of a registered enum type.
type Member struct {
	// Name is the canonical member name.
	Name string
	// Code is the member's underlying numeric value.
	Code int64
}

// enumInfo holds the member set of one registered enum type.
type enumInfo struct {
	typ     reflect.Type
	members []Member         // ascending code order
	byName  map[string]int64 // lowercased name -> code
	byCode  map[int64]string // code -> canonical name
}

var enumRegistry = struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*enumInfo
}{
	byType: make(map[reflect.Type]*enumInfo),
}

// RegisterEnum records the defined members of the enum type E so that values
// of E can be coerced from member names or integer codes and serialized back.
// E must be a defined type with an integer underlying kind, member names must
// be non-blank and unique case-insensitively, and codes must be unique.
// Re-registering a type replaces its member set.
func RegisterEnum[E comparable](members map[E]string) error {
	t := reflect.TypeOf((*E)(nil)).Elem()
	if !isIntegerKind(t.Kind()) {
		return &ArgumentError{Message: fmt.Sprintf("convert: %s is not an integer-backed enum type", t)}
	}
	if len(members) == 0 {
		return &ArgumentError{Message: fmt.Sprintf("convert: enum type %s has no members", t)}
	}

	info := &enumInfo{
		typ:    t,
		byName: make(map[string]int64, len(members)),
		byCode: make(map[int64]string, len(members)),
	}
	for member, name := range members {
		if strings.TrimSpace(name) == "" {
			return &ArgumentError{Message: fmt.Sprintf("convert: enum type %s has a blank member name", t)}
		}
		code, err := integerCode(reflect.ValueOf(member))
		if err != nil {
			return err
		}
		lower := strings.ToLower(name)
		if _, dup := info.byName[lower]; dup {
			return &ArgumentError{Message: fmt.Sprintf("convert: enum type %s declares member name %q twice", t, name)}
		}
		if _, dup := info.byCode[code]; dup {
			return &ArgumentError{Message: fmt.Sprintf("convert: enum type %s declares code %d twice", t, code)}
		}
		info.byName[lower] = code
		info.byCode[code] = name
		info.members = append(info.members, Member{Name: name, Code: code})
	}
	sort.Slice(info.members, func(i, j int) bool { return info.members[i].Code < info.members[j].Code })

	enumRegistry.mu.Lock()
	defer enumRegistry.mu.Unlock()
	enumRegistry.byType[t] = info
	return nil
}

// MustRegisterEnum is a helper that calls RegisterEnum and panics if an error
// occurs. It is intended for use during package initialization.
func MustRegisterEnum[E comparable](members map[E]string) {
	if err := RegisterEnum[E](members); err != nil {
		panic(err)
	}
}

// IsEnum reports whether t is a registered enum type.
func IsEnum(t reflect.Type) bool {
	_, ok := lookupEnum(t)
	return ok
}

// EnumMembers returns the defined members of E in ascending code order.
func EnumMembers[E comparable]() ([]Member, error) {
	t := reflect.TypeOf((*E)(nil)).Elem()
	info, ok := lookupEnum(t)
	if !ok {
		return nil, &ArgumentError{Message: fmt.Sprintf("convert: %s is not a registered enum type", t)}
	}
	members := make([]Member, len(info.members))
	copy(members, info.members)
	return members, nil
}

// EnumName returns the canonical member name for the given enum value.
func EnumName(value any) (string, error) {
	s, err := Serialize(value, ModeStrings)
	if err != nil {
		return "", err
	}
	return s.(string), nil
}

func lookupEnum(t reflect.Type) (*enumInfo, bool) {
	if t == nil {
		return nil, false
	}
	enumRegistry.mu.RLock()
	defer enumRegistry.mu.RUnlock()
	info, ok := enumRegistry.byType[t]
	return info, ok
}

// ToEnum coerces value to the enum type E or its pointer form. It accepts
// values already of type E, member names matched case-insensitively, or
// integer codes of any signed or unsigned width that equal a defined
// member's code. A nil value coerces to a nil pointer when E is a pointer
// type.
func ToEnum[E comparable](value any) (E, error) {
	var zero E
	v, err := toEnumType(value, reflect.TypeOf((*E)(nil)).Elem())
	if err != nil {
		return zero, err
	}
	return v.(E), nil
}

// toEnumType is the non-generic core of ToEnum, shared with To for enum
// target types.
func toEnumType(value any, t reflect.Type) (any, error) {
	// A pointer target accepts absence; otherwise its element coerces.
	if t.Kind() == reflect.Pointer {
		if value == nil {
			return reflect.Zero(t).Interface(), nil
		}
		inner, err := toEnumType(value, t.Elem())
		if err != nil {
			return nil, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(reflect.ValueOf(inner))
		return p.Interface(), nil
	}

	info, ok := lookupEnum(t)
	if !ok {
		return nil, &ArgumentError{Message: fmt.Sprintf("convert: %s is not a registered enum type", t)}
	}
	if value == nil {
		return nil, &ConversionError{Value: nil, Target: t, Reason: "nil value for a non-pointer enum target"}
	}
	if reflect.TypeOf(value) == t {
		return value, nil
	}

	rv := reflect.ValueOf(value)
	switch {
	case rv.Kind() == reflect.String:
		s := rv.String()
		if strings.TrimSpace(s) == "" {
			return nil, &ConversionError{Value: s, Target: t, Reason: "empty or whitespace-only member name"}
		}
		code, ok := info.byName[strings.ToLower(s)]
		if !ok {
			return nil, &ConversionError{Value: s, Target: t, Reason: fmt.Sprintf("%q does not name a member of %s", s, t)}
		}
		return memberValue(t, code), nil
	case isIntegerKind(rv.Kind()):
		code, err := integerCode(rv)
		if err != nil {
			return nil, &ConversionError{Value: value, Target: t, Cause: err}
		}
		if _, ok := info.byCode[code]; !ok {
			return nil, &ConversionError{Value: value, Target: t, Reason: fmt.Sprintf("%d is not the code of any member of %s", code, t)}
		}
		return memberValue(t, code), nil
	default:
		return nil, &ConversionError{Value: value, Target: t, Reason: "value must be an enum member, string, or integer"}
	}
}

// Serialize writes an enum value as either its member name or its underlying
// numeric code as a 32-bit integer, depending on mode.
func Serialize(value any, mode Mode) (any, error) {
	if value == nil {
		return nil, &ArgumentError{Message: "convert: cannot serialize a nil enum value"}
	}
	t := reflect.TypeOf(value)
	info, ok := lookupEnum(t)
	if !ok {
		return nil, &ArgumentError{Message: fmt.Sprintf("convert: %s is not a registered enum type", t)}
	}
	code, err := integerCode(reflect.ValueOf(value))
	if err != nil {
		return nil, err
	}
	switch mode {
	case ModeStrings:
		name, ok := info.byCode[code]
		if !ok {
			return nil, &ConversionError{Value: value, Target: t, Reason: fmt.Sprintf("%d is not the code of any member of %s", code, t)}
		}
		return name, nil
	case ModeIntegers:
		if code < math.MinInt32 || code > math.MaxInt32 {
			return nil, &ConversionError{Value: value, Target: t, Reason: fmt.Sprintf("code %d does not fit in a 32-bit integer", code)}
		}
		return int32(code), nil
	default:
		return nil, &UnsupportedModeError{Mode: mode}
	}
}

// memberValue builds a value of the enum type t holding code.
func memberValue(t reflect.Type, code int64) any {
	v := reflect.New(t).Elem()
	switch {
	case isUnsignedKind(t.Kind()):
		v.SetUint(uint64(code))
	default:
		v.SetInt(code)
	}
	return v.Interface()
}

// integerCode reads any integer-kind value as an int64 code.
func integerCode(v reflect.Value) (int64, error) {
	switch {
	case isUnsignedKind(v.Kind()):
		u := v.Uint()
		if u > 1<<63-1 {
			return 0, &ConversionError{Value: v.Interface(), Target: v.Type(), Reason: "value overflows the enum code range"}
		}
		return int64(u), nil
	case isIntegerKind(v.Kind()):
		return v.Int(), nil
	default:
		return 0, &ArgumentError{Message: fmt.Sprintf("convert: %s is not an integer kind", v.Type())}
	}
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isUnsignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
