// Package entity renders the per-type SQL statement templates.
package entity

import "strings"

// Generated SQL uses bracket-quoted identifiers and @-prefixed named
// parameter markers.

// renderInsert builds the INSERT template with members in sorted order:
//
//	INSERT INTO [table]
//	([col1], [col2])
//	VALUES
//	(@col1, @col2)
func renderInsert(table string, columns []string) string {
	var b strings.Builder
	b.WriteString("INSERT INTO [")
	b.WriteString(table)
	b.WriteString("]\n(")
	for i, c := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("[")
		b.WriteString(c)
		b.WriteString("]")
	}
	b.WriteString(")\nVALUES\n(")
	for i, c := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("@")
		b.WriteString(c)
	}
	b.WriteString(")\n")
	return b.String()
}

// renderUpdate builds the UPDATE template. Every member appears in the SET
// clause, key included, so that parameter slots stay positionally aligned
// with Metadata.Columns.
func renderUpdate(table string, columns []string, key string) string {
	var b strings.Builder
	b.WriteString("UPDATE [")
	b.WriteString(table)
	b.WriteString("]\nSET ")
	for i, c := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("[")
		b.WriteString(c)
		b.WriteString("] = @")
		b.WriteString(c)
	}
	b.WriteString("\nWHERE [")
	b.WriteString(key)
	b.WriteString("] = @")
	b.WriteString(key)
	return b.String()
}

// renderDelete builds the DELETE template. The parameter placeholder is the
// fixed name Key, not the key member's own name; callers bind under @Key.
func renderDelete(table string, key string) string {
	var b strings.Builder
	b.WriteString("DELETE FROM [")
	b.WriteString(table)
	b.WriteString("] WHERE [")
	b.WriteString(key)
	b.WriteString("] = @Key")
	return b.String()
}
