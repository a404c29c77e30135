// Package command fills pre-allocated parameter slots from record values.
package command

import (
	"fmt"
	"reflect"

	"github.com/sqlbind/sqlbind/convert"
	"github.com/sqlbind/sqlbind/entity"
)

// Populate reads each member of record through the metadata's cached getters
// and writes the values into the corresponding slots. Enum-flagged members
// are serialized per mode; nil member values are written through as the
// explicit absence marker. The slot sequence must be the one allocated by a
// build function, positionally aligned with the metadata's columns.
func Populate(meta *entity.Metadata, slots []*Param, record any, mode convert.Mode) error {
	if meta == nil {
		return &convert.ArgumentError{Message: "command: metadata is nil"}
	}
	if slots == nil {
		return &convert.ArgumentError{Message: "command: parameter slots are nil"}
	}
	if record == nil {
		return &convert.ArgumentError{Message: "command: record is nil"}
	}
	if len(slots) != len(meta.Columns) {
		return &convert.ArgumentError{Message: fmt.Sprintf("command: %d parameter slots for %d members", len(slots), len(meta.Columns))}
	}

	for i, get := range meta.Getters {
		value, err := get(record)
		if err != nil {
			return err
		}
		if value != nil && meta.IsEnumLike[i] && convert.IsEnum(reflect.TypeOf(value)) {
			value, err = convert.Serialize(value, mode)
			if err != nil {
				return err
			}
		}
		if slots[i] == nil {
			return &convert.ArgumentError{Message: fmt.Sprintf("command: parameter slot %d is nil", i)}
		}
		slots[i].Value = value
	}
	return nil
}

// PopulateKey writes the record's key member value into the slot allocated
// by BuildDelete, serializing enum keys per mode.
func PopulateKey(meta *entity.Metadata, slot *Param, record any, mode convert.Mode) error {
	if meta == nil {
		return &convert.ArgumentError{Message: "command: metadata is nil"}
	}
	if slot == nil {
		return &convert.ArgumentError{Message: "command: parameter slot is nil"}
	}
	if record == nil {
		return &convert.ArgumentError{Message: "command: record is nil"}
	}

	value, err := meta.KeyGetter(record)
	if err != nil {
		return err
	}
	if value != nil && convert.IsEnum(reflect.TypeOf(value)) {
		value, err = convert.Serialize(value, mode)
		if err != nil {
			return err
		}
	}
	slot.Value = value
	return nil
}
