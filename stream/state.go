package stream

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrNegativeDepth = errors.New("negative depth")
	ErrKeyNoValue    = errors.New("key without value")
	ErrKeyNotInObj   = errors.New("key outside of object")
	ErrValueNoKey    = errors.New("object value without key")
	ErrMismatchedEnd = errors.New("mismatched end")
	ErrAfterRoot     = errors.New("event after complete root")
)

// State tracks the container stack and the path of the current event.  It
// validates event order without building anything.
type State struct {
	stack []item
	done  bool
}

type item struct {
	obj    bool
	n      int
	key    string
	hasKey bool
}

func NewState() *State {
	return &State{}
}

func (s *State) Depth() int {
	return len(s.stack)
}

// Done reports whether a complete root value has been seen.
func (s *State) Done() bool {
	return s.done
}

func (s *State) current() *item {
	return &s.stack[len(s.stack)-1]
}

// ProcessEvent validates event against the current state and updates it.
func (s *State) ProcessEvent(event *Event) error {
	if s.done {
		return ErrAfterRoot
	}
	switch event.Type {
	case EventObjectStart, EventArrayStart:
		if err := s.valueStart(); err != nil {
			return err
		}
		s.stack = append(s.stack, item{obj: event.Type == EventObjectStart})
	case EventObjectEnd, EventArrayEnd:
		if s.Depth() == 0 {
			return ErrNegativeDepth
		}
		cur := s.current()
		if cur.obj != (event.Type == EventObjectEnd) {
			return ErrMismatchedEnd
		}
		if cur.hasKey {
			return ErrKeyNoValue
		}
		s.stack = s.stack[:len(s.stack)-1]
		s.valueEnd()
	case EventKey:
		if s.Depth() == 0 || !s.current().obj {
			return ErrKeyNotInObj
		}
		cur := s.current()
		if cur.hasKey {
			return ErrKeyNoValue
		}
		cur.key = event.Key
		cur.hasKey = true
	case EventValue:
		if err := s.valueStart(); err != nil {
			return err
		}
		s.valueEnd()
	}
	return nil
}

func (s *State) valueStart() error {
	if s.Depth() == 0 {
		return nil
	}
	cur := s.current()
	if cur.obj && !cur.hasKey {
		return ErrValueNoKey
	}
	return nil
}

func (s *State) valueEnd() {
	if s.Depth() == 0 {
		s.done = true
		return
	}
	cur := s.current()
	cur.n++
	cur.hasKey = false
}

// Path returns the location of the value being processed, as "$.a[1]".
func (s *State) Path() string {
	b := &strings.Builder{}
	b.WriteByte('$')
	for i := range s.stack {
		it := &s.stack[i]
		if it.obj {
			if !it.hasKey && it.n == 0 {
				continue
			}
			b.WriteByte('.')
			b.WriteString(it.key)
			continue
		}
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(it.n))
		b.WriteByte(']')
	}
	return b.String()
}
