// Package sqlbind maps Go values and records onto parameterized SQL.
//
// Define your records as Go structs with struct tags, and get cached SQL
// templates, value and enum conversion, composable parameterized statements,
// and ready-to-execute commands without hand-writing the plumbing.
//
// The module is organized into four packages:
//
//   - [github.com/sqlbind/sqlbind/convert] — value conversion and enum serialization
//   - [github.com/sqlbind/sqlbind/entity] — reflective record metadata with cached SQL templates
//   - [github.com/sqlbind/sqlbind/statement] — parameterized statement composition
//   - [github.com/sqlbind/sqlbind/command] — command assembly over database/sql connections
//
// All four packages work against any database/sql driver; nothing here opens
// a connection on its own.
package sqlbind
