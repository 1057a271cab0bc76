package stream

// Error represents an invalid event sequence.
type Error struct {
	Msg string
	Err error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
