package toml

import (
	"fmt"
	"strings"

	"github.com/signadot/zparse/ir"
	"github.com/signadot/zparse/token"
)

type EventType int

const (
	// TableStart is emitted for a [table] or [[array.of.tables]] header.
	TableStart EventType = iota
	// KeyValue is emitted for each key = value statement.  Its Path is
	// relative to the most recent header.
	KeyValue
)

func (t EventType) String() string {
	switch t {
	case TableStart:
		return "TableStart"
	case KeyValue:
		return "KeyValue"
	}
	return "Unknown"
}

type Event struct {
	Type    EventType
	Path    []string
	IsArray bool
	Value   *ir.Value
	Span    token.Span
}

func (e *Event) String() string {
	p := strings.Join(e.Path, ".")
	switch e.Type {
	case TableStart:
		if e.IsArray {
			return fmt.Sprintf("%s([[%s]])", e.Type, p)
		}
		return fmt.Sprintf("%s([%s])", e.Type, p)
	default:
		return fmt.Sprintf("%s(%s = %s)", e.Type, p, e.Value.Type)
	}
}
