package stream

import (
	"fmt"

	"github.com/signadot/zparse/ir"
	"github.com/signadot/zparse/token"
)

// Event is one incremental parse notification.  Key is set for EventKey,
// Value for EventValue.
type Event struct {
	Type  EventType
	Key   string
	Value *ir.Value
	Span  token.Span
}

// IsValueStart returns true if this event starts a value (as opposed to a
// key or an end marker).
func (e *Event) IsValueStart() bool {
	return e.Type == EventObjectStart ||
		e.Type == EventArrayStart ||
		e.Type == EventValue
}

func (e *Event) String() string {
	switch e.Type {
	case EventKey:
		return fmt.Sprintf("%s(%q)", e.Type, e.Key)
	case EventValue:
		if e.Value == nil {
			return fmt.Sprintf("%s(<nil>)", e.Type)
		}
		return fmt.Sprintf("%s(%s)", e.Type, e.Value.Type)
	default:
		return e.Type.String()
	}
}

type EventType int

const (
	EventObjectStart EventType = iota
	EventObjectEnd
	EventArrayStart
	EventArrayEnd
	EventKey
	EventValue
)

func (t EventType) String() string {
	switch t {
	case EventObjectStart:
		return "ObjectStart"
	case EventObjectEnd:
		return "ObjectEnd"
	case EventArrayStart:
		return "ArrayStart"
	case EventArrayEnd:
		return "ArrayEnd"
	case EventKey:
		return "Key"
	case EventValue:
		return "Value"
	default:
		return "Unknown"
	}
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(d []byte) error {
	k := string(d)
	pt, ok := map[string]EventType{
		"ObjectStart": EventObjectStart,
		"ObjectEnd":   EventObjectEnd,
		"ArrayStart":  EventArrayStart,
		"ArrayEnd":    EventArrayEnd,
		"Key":         EventKey,
		"Value":       EventValue,
	}[k]
	if ok {
		*t = pt
		return nil
	}
	return fmt.Errorf("unknown type %q", k)
}
