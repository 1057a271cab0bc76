package stream

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/zparse/ir"
)

func types(events []Event) []EventType {
	res := make([]EventType, len(events))
	for i := range events {
		res[i] = events[i].Type
	}
	return res
}

func TestValueToEvents(t *testing.T) {
	v := ir.FromKeyVals(
		ir.KeyVal{Key: "a", Val: ir.FromSlice([]*ir.Value{ir.FromInt(1), ir.Null()})},
		ir.KeyVal{Key: "b", Val: ir.FromString("x")},
	)
	events := ValueToEvents(v)
	want := []EventType{
		EventObjectStart,
		EventKey, EventArrayStart, EventValue, EventValue, EventArrayEnd,
		EventKey, EventValue,
		EventObjectEnd,
	}
	if diff := cmp.Diff(want, types(events)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	back, err := EventsToValue(events)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(v, back) {
		t.Errorf("events did not fold back to the same value")
	}
}

func TestValueToEventsLeaf(t *testing.T) {
	events := ValueToEvents(ir.FromBool(true))
	if len(events) != 1 || events[0].Type != EventValue || !events[0].Value.Bool {
		t.Errorf("got %v", events)
	}
	if ValueToEvents(nil) != nil {
		t.Errorf("nil value produced events")
	}
}

func TestBuilderDuplicateKeyOverwrites(t *testing.T) {
	events := []Event{
		{Type: EventObjectStart},
		{Type: EventKey, Key: "a"},
		{Type: EventValue, Value: ir.FromInt(1)},
		{Type: EventKey, Key: "b"},
		{Type: EventValue, Value: ir.FromInt(2)},
		{Type: EventKey, Key: "a"},
		{Type: EventValue, Value: ir.FromInt(3)},
		{Type: EventObjectEnd},
	}
	v, err := EventsToValue(events)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, v.Object.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if v.Get("a").Number != 3 {
		t.Errorf("a = %v", v.Get("a").Number)
	}
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		err    error
	}{
		{
			name:   "key outside object",
			events: []Event{{Type: EventArrayStart}, {Type: EventKey, Key: "a"}},
			err:    ErrKeyNotInObj,
		},
		{
			name:   "value without key",
			events: []Event{{Type: EventObjectStart}, {Type: EventValue, Value: ir.Null()}},
			err:    ErrValueNoKey,
		},
		{
			name:   "mismatched end",
			events: []Event{{Type: EventObjectStart}, {Type: EventArrayEnd}},
			err:    ErrMismatchedEnd,
		},
		{
			name:   "end at root",
			events: []Event{{Type: EventArrayEnd}},
			err:    ErrNegativeDepth,
		},
		{
			name:   "second root",
			events: []Event{{Type: EventValue, Value: ir.Null()}, {Type: EventValue, Value: ir.Null()}},
			err:    ErrAfterRoot,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EventsToValue(tt.events)
			if !errors.Is(err, tt.err) {
				t.Errorf("got %v, want %v", err, tt.err)
			}
		})
	}
	if _, err := EventsToValue([]Event{{Type: EventObjectStart}}); err == nil {
		t.Errorf("incomplete sequence accepted")
	}
}

func TestStatePath(t *testing.T) {
	s := NewState()
	events := []Event{
		{Type: EventObjectStart},
		{Type: EventKey, Key: "a"},
		{Type: EventArrayStart},
		{Type: EventValue, Value: ir.Null()},
	}
	for i := range events {
		if err := s.ProcessEvent(&events[i]); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.Path(); got != "$.a[1]" {
		t.Errorf("path %q", got)
	}
	if s.Depth() != 2 {
		t.Errorf("depth %d", s.Depth())
	}
}
