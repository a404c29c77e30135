// Package entity provides parsing of `db` struct tags.
package entity

import (
	"fmt"
	"strings"
)

// fieldTag is the structured representation of a parsed `db` struct tag.
type fieldTag struct {
	// Name overrides the column name; empty means the field name is used.
	Name string
	// Key marks the field as the record type's key member.
	Key bool
	// Skip excludes the field from the mapping entirely.
	Skip bool
}

// parseTag parses the content of a `db` struct tag. Supported forms are
// "Name", "Name,key", ",key", and "-" to exclude the field.
func parseTag(tag string) (fieldTag, error) {
	if tag == "" {
		return fieldTag{}, nil
	}
	if tag == "-" {
		return fieldTag{Skip: true}, nil
	}

	parts := strings.Split(tag, ",")
	ft := fieldTag{Name: strings.TrimSpace(parts[0])}

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		switch part {
		case "":
		case "key":
			ft.Key = true
		default:
			return fieldTag{}, fmt.Errorf("unknown tag option: %q", part)
		}
	}

	return ft, nil
}
