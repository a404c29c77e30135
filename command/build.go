// Package command provides the command build functions.
package command

import (
	"context"
	"database/sql"
	"time"

	"github.com/sqlbind/sqlbind/convert"
	"github.com/sqlbind/sqlbind/entity"
	"github.com/sqlbind/sqlbind/statement"
)

// Option configures a built command.
type Option func(*Command)

// WithTx attaches a transaction handle to the command.
func WithTx(tx *sql.Tx) Option {
	return func(c *Command) { c.Tx = tx }
}

// WithTimeout sets the command timeout the transport should apply.
func WithTimeout(d time.Duration) Option {
	return func(c *Command) { c.Timeout = d }
}

// WithKind sets how the transport interprets the command text.
func WithKind(k Kind) Option {
	return func(c *Command) { c.Kind = k }
}

// Build allocates a command bound to conn with the given SQL text. The
// command is returned unexecuted.
func Build(conn Conn, code string, opts ...Option) (*Command, error) {
	return BuildContext(context.Background(), conn, code, opts...)
}

// BuildContext is Build with a context the transport should execute under.
func BuildContext(ctx context.Context, conn Conn, code string, opts ...Option) (*Command, error) {
	if conn == nil {
		return nil, &convert.ArgumentError{Message: "command: connection is nil"}
	}
	cmd := &Command{Text: code, conn: conn, ctx: ctx}
	for _, opt := range opts {
		opt(cmd)
	}
	return cmd, nil
}

// BuildInsert allocates a command carrying the metadata's INSERT template
// with one parameter slot per member, in metadata order. Each slot's storage
// shape follows the member's classification flags. The slot sequence is
// returned for later population via Populate.
func BuildInsert(conn Conn, meta *entity.Metadata, opts ...Option) (*Command, []*Param, error) {
	return buildTemplate(conn, meta, func(m *entity.Metadata) string { return m.InsertSQL }, opts...)
}

// BuildUpdate is BuildInsert for the UPDATE template. Slots cover every
// member including the key, which the WHERE clause references.
func BuildUpdate(conn Conn, meta *entity.Metadata, opts ...Option) (*Command, []*Param, error) {
	return buildTemplate(conn, meta, func(m *entity.Metadata) string { return m.UpdateSQL }, opts...)
}

func buildTemplate(conn Conn, meta *entity.Metadata, text func(*entity.Metadata) string, opts ...Option) (*Command, []*Param, error) {
	if meta == nil {
		return nil, nil, &convert.ArgumentError{Message: "command: metadata is nil"}
	}
	cmd, err := Build(conn, text(meta), opts...)
	if err != nil {
		return nil, nil, err
	}

	slots := make([]*Param, len(meta.Columns))
	for i, name := range meta.Columns {
		slot := &Param{Name: name}
		switch {
		case meta.IsByteArray[i]:
			slot.Shape = ShapeBinary
		case meta.IsTimeLike[i]:
			slot.Shape = ShapeTimestamp
		}
		slots[i] = slot
	}
	cmd.Params = slots
	return cmd, slots, nil
}

// BuildDelete allocates a command carrying the metadata's DELETE template
// with a single slot under the template's fixed Key placeholder name. The
// slot's shape follows the key member's classification flags.
func BuildDelete(conn Conn, meta *entity.Metadata, opts ...Option) (*Command, *Param, error) {
	if meta == nil {
		return nil, nil, &convert.ArgumentError{Message: "command: metadata is nil"}
	}
	cmd, err := Build(conn, meta.DeleteSQL, opts...)
	if err != nil {
		return nil, nil, err
	}

	slot := &Param{Name: "Key"}
	for i, name := range meta.Columns {
		if name != meta.KeyName {
			continue
		}
		switch {
		case meta.IsByteArray[i]:
			slot.Shape = ShapeBinary
		case meta.IsTimeLike[i]:
			slot.Shape = ShapeTimestamp
		}
	}
	cmd.Params = []*Param{slot}
	return cmd, slot, nil
}

// FromStatement binds a composed statement to a command: the statement's
// code becomes the command text and its parameters become slots with default
// shape inference. Temporary-table fragments are not carried; materializing
// them is the transport's concern and they remain readable on the statement.
func FromStatement(conn Conn, s *statement.Statement, opts ...Option) (*Command, error) {
	if s == nil {
		return nil, &convert.ArgumentError{Message: "command: statement is nil"}
	}
	cmd, err := Build(conn, s.Code(), opts...)
	if err != nil {
		return nil, err
	}
	params := s.Params()
	cmd.Params = make([]*Param, len(params))
	for i, p := range params {
		cmd.Params[i] = &Param{Name: p.Name, Value: p.Value}
	}
	return cmd, nil
}
