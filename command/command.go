// Package command assembles transport-level commands from derived entity
// metadata or composed statements. Commands are built, never executed:
// execution, cancellation, and result reading belong to the transport layer.
package command

import (
	"context"
	"database/sql"
	"time"
)

// Shape is the native storage shape hint for a parameter slot. It is
// assigned from entity classification flags so the transport binds the value
// with the right wire type.
type Shape int

const (
	// ShapeDefault leaves the storage shape to driver inference.
	ShapeDefault Shape = iota
	// ShapeBinary marks byte-array members.
	ShapeBinary
	// ShapeTimestamp marks date/time members needing full precision.
	ShapeTimestamp
)

// Kind selects how the transport interprets the command text.
type Kind int

const (
	// KindText is plain SQL text.
	KindText Kind = iota
	// KindProcedure names a stored procedure.
	KindProcedure
)

// Param is one named command parameter slot. Slots are pre-allocated by the
// build functions and filled later by Populate.
type Param struct {
	Name  string
	Value any
	Shape Shape
}

// Conn is the narrow transport connection surface commands are bound to.
// *sql.DB, *sql.Tx, and *sql.Conn all satisfy it.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Command is an unexecuted transport command: SQL text, kind, timeout,
// optional transaction handle, and ordered named parameter slots.
type Command struct {
	Text    string
	Kind    Kind
	Timeout time.Duration
	Tx      *sql.Tx
	Params  []*Param

	conn Conn
	ctx  context.Context
}

// Conn returns the connection the command is bound to. When the command was
// built inside a transaction, the transaction handle takes precedence for
// execution; Conn still identifies the underlying connection.
func (c *Command) Conn() Conn {
	return c.conn
}

// Context returns the context attached at build time, or a background
// context when none was.
func (c *Command) Context() context.Context {
	if c.ctx != nil {
		return c.ctx
	}
	return context.Background()
}

// Args renders the parameter slots as sql.Named arguments in slot order, for
// whatever executes the command.
func (c *Command) Args() []any {
	args := make([]any, len(c.Params))
	for i, p := range c.Params {
		args[i] = sql.Named(p.Name, p.Value)
	}
	return args
}
