// Package entity derives the SQL mapping metadata of record struct types:
// table name, key member, sorted member accessors, type classification
// flags, and ready-to-use INSERT, UPDATE, and DELETE templates.
package entity

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/sqlbind/sqlbind/convert"
)

// Tabler lets a record type override the table its rows map to. Types that
// do not implement it map to a table named after the struct type.
type Tabler interface {
	TableName() string
}

// Getter reads one member value from a record instance. Nil pointer members
// read as nil; non-nil pointer members read as their pointee.
type Getter func(record any) (any, error)

// Metadata describes how a record type maps to a single table row. It is
// immutable: one instance is derived per type and cached for the process
// lifetime.
type Metadata struct {
	// Table is the resolved table name.
	Table string
	// KeyName is the column name of the single key member.
	KeyName string
	// KeyType is the declared Go type of the key member.
	KeyType reflect.Type
	// KeyGetter reads the key member from a record instance.
	KeyGetter Getter
	// Columns holds the member column names, sorted alphabetically.
	Columns []string
	// Getters is positionally aligned with Columns.
	Getters []Getter
	// IsByteArray flags []byte members, aligned with Columns.
	IsByteArray []bool
	// IsTimeLike flags time.Time members, aligned with Columns.
	IsTimeLike []bool
	// IsEnumLike flags registered enum members, aligned with Columns.
	IsEnumLike []bool
	// InsertSQL, UpdateSQL, and DeleteSQL are the pre-rendered statement
	// templates for single-record operations.
	InsertSQL string
	UpdateSQL string
	DeleteSQL string

	goType reflect.Type
}

// GoType returns the struct type this metadata was derived from.
func (m *Metadata) GoType() reflect.Type {
	return m.goType
}

// member is one mapped struct field during derivation.
type member struct {
	name  string
	index int
	typ   reflect.Type
	key   bool
}

// derive analyzes a record struct type and extracts its mapping metadata.
// It fails when the type is not a struct or does not declare exactly one
// key member.
func derive(t reflect.Type) (*Metadata, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, &convert.ArgumentError{Message: fmt.Sprintf("entity: expected a struct type, got %s", t)}
	}

	var members []member
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Only exported, non-embedded fields are mapped.
		if !field.IsExported() || field.Anonymous {
			continue
		}

		tag, err := parseTag(field.Tag.Get("db"))
		if err != nil {
			return nil, &convert.ArgumentError{Message: fmt.Sprintf("entity: %s.%s: %v", t.Name(), field.Name, err)}
		}
		if tag.Skip {
			continue
		}

		name := field.Name
		if tag.Name != "" {
			name = tag.Name
		}
		members = append(members, member{name: name, index: i, typ: field.Type, key: tag.Key})
	}

	// Sorted member order keeps generated SQL and parameter order stable.
	sort.Slice(members, func(i, j int) bool { return members[i].name < members[j].name })

	var keys []member
	for _, m := range members {
		if m.key {
			keys = append(keys, m)
		}
	}
	if len(keys) != 1 {
		return nil, &convert.ArgumentError{Message: fmt.Sprintf("entity: type %s has %d key members, want exactly one", t.Name(), len(keys))}
	}
	key := keys[0]

	meta := &Metadata{
		Table:       tableName(t),
		KeyName:     key.name,
		KeyType:     key.typ,
		KeyGetter:   fieldGetter(t, key.index),
		Columns:     make([]string, len(members)),
		Getters:     make([]Getter, len(members)),
		IsByteArray: make([]bool, len(members)),
		IsTimeLike:  make([]bool, len(members)),
		IsEnumLike:  make([]bool, len(members)),
		goType:      t,
	}
	for i, m := range members {
		base := m.typ
		if base.Kind() == reflect.Pointer {
			base = base.Elem()
		}
		meta.Columns[i] = m.name
		meta.Getters[i] = fieldGetter(t, m.index)
		meta.IsByteArray[i] = base.Kind() == reflect.Slice && base.Elem().Kind() == reflect.Uint8
		meta.IsTimeLike[i] = base == reflect.TypeOf((*time.Time)(nil)).Elem()
		meta.IsEnumLike[i] = convert.IsEnum(base)
	}

	meta.InsertSQL = renderInsert(meta.Table, meta.Columns)
	meta.UpdateSQL = renderUpdate(meta.Table, meta.Columns, meta.KeyName)
	meta.DeleteSQL = renderDelete(meta.Table, meta.KeyName)
	return meta, nil
}

// tableName resolves the table for t from its Tabler implementation, falling
// back to the struct type's own name.
func tableName(t reflect.Type) string {
	if tab, ok := reflect.New(t).Interface().(Tabler); ok {
		if name := tab.TableName(); name != "" {
			return name
		}
	}
	return t.Name()
}

// fieldGetter binds a reader for the field at index on records of type t.
func fieldGetter(t reflect.Type, index int) Getter {
	return func(record any) (any, error) {
		rv := reflect.ValueOf(record)
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return nil, &convert.ArgumentError{Message: "entity: record is nil"}
			}
			rv = rv.Elem()
		}
		if !rv.IsValid() || rv.Type() != t {
			return nil, &convert.ArgumentError{Message: fmt.Sprintf("entity: record is %T, want %s", record, t)}
		}
		fv := rv.Field(index)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				return nil, nil
			}
			fv = fv.Elem()
		}
		return fv.Interface(), nil
	}
}
