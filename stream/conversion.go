package stream

import (
	"fmt"

	"github.com/signadot/zparse/ir"
)

// Builder folds events into a Value.  Duplicate keys within one object
// overwrite the earlier value in place.
type Builder struct {
	state *State
	stack []frame
	root  *ir.Value
}

type frame struct {
	val *ir.Value
	key string
}

func NewBuilder() *Builder {
	return &Builder{state: NewState()}
}

// Push applies one event.
func (b *Builder) Push(ev *Event) error {
	if err := b.state.ProcessEvent(ev); err != nil {
		return &Error{Msg: fmt.Sprintf("%s at %s: %v", ev, b.state.Path(), err), Err: err}
	}
	switch ev.Type {
	case EventObjectStart:
		v := ir.FromObject(nil)
		b.add(v)
		b.stack = append(b.stack, frame{val: v})
	case EventArrayStart:
		v := ir.FromSlice(nil)
		b.add(v)
		b.stack = append(b.stack, frame{val: v})
	case EventObjectEnd, EventArrayEnd:
		b.stack = b.stack[:len(b.stack)-1]
	case EventKey:
		b.stack[len(b.stack)-1].key = ev.Key
	case EventValue:
		v := ev.Value
		if v == nil {
			v = ir.Null()
		}
		b.add(v)
	}
	return nil
}

func (b *Builder) add(v *ir.Value) {
	if len(b.stack) == 0 {
		b.root = v
		return
	}
	parent := &b.stack[len(b.stack)-1]
	switch parent.val.Type {
	case ir.ObjectType:
		parent.val.Object.Set(parent.key, v)
	case ir.ArrayType:
		parent.val.Array = append(parent.val.Array, v)
	}
}

// Done reports whether a complete root value has been built.
func (b *Builder) Done() bool {
	return b.state.Done()
}

// Depth is the number of open containers.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// Value returns the built root, or nil if it is not complete.
func (b *Builder) Value() *ir.Value {
	if !b.Done() {
		return nil
	}
	return b.root
}

// EventsToValue folds a complete event sequence into a Value.
func EventsToValue(events []Event) (*ir.Value, error) {
	if len(events) == 0 {
		return nil, nil
	}
	b := NewBuilder()
	for i := range events {
		if err := b.Push(&events[i]); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}
	if !b.Done() {
		return nil, &Error{Msg: fmt.Sprintf("incomplete event sequence, %d open containers", b.Depth())}
	}
	return b.Value(), nil
}

// ValueToEvents flattens v into the event sequence a parser would emit for
// it.
func ValueToEvents(v *ir.Value) []Event {
	var res []Event
	var walk func(v *ir.Value)
	walk = func(v *ir.Value) {
		switch v.Type {
		case ir.ObjectType:
			res = append(res, Event{Type: EventObjectStart})
			for k, e := range v.Object.All() {
				res = append(res, Event{Type: EventKey, Key: k})
				walk(e)
			}
			res = append(res, Event{Type: EventObjectEnd})
		case ir.ArrayType:
			res = append(res, Event{Type: EventArrayStart})
			for _, e := range v.Array {
				walk(e)
			}
			res = append(res, Event{Type: EventArrayEnd})
		default:
			res = append(res, Event{Type: EventValue, Value: v})
		}
	}
	if v != nil {
		walk(v)
	}
	return res
}
