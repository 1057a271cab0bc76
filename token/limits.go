package token

const (
	DefaultMaxDepth = 128
	DefaultMaxSize  = 10 << 20
)

// Limits bounds the resources a parser may use.  A zero field is
// unlimited.
type Limits struct {
	MaxDepth         int
	MaxSize          int
	MaxStringLength  int
	MaxObjectEntries int
}

func DefaultLimits() Limits {
	return Limits{
		MaxDepth: DefaultMaxDepth,
		MaxSize:  DefaultMaxSize,
	}
}

// CheckDepth reports an error when depth, the nesting level after opening
// a container, exceeds MaxDepth.
func (l Limits) CheckDepth(depth int, span Span) error {
	if l.MaxDepth > 0 && depth > l.MaxDepth {
		return MaxErr(KindMaxDepthExceeded, l.MaxDepth, span)
	}
	return nil
}

// CheckSize reports an error when the number of consumed bytes exceeds
// MaxSize.
func (l Limits) CheckSize(consumed int, span Span) error {
	if l.MaxSize > 0 && consumed > l.MaxSize {
		return MaxErr(KindMaxSizeExceeded, l.MaxSize, span)
	}
	return nil
}

func (l Limits) CheckString(n int, span Span) error {
	if l.MaxStringLength > 0 && n > l.MaxStringLength {
		return MaxErr(KindMaxStringLengthExceeded, l.MaxStringLength, span)
	}
	return nil
}

func (l Limits) CheckEntries(n int, span Span) error {
	if l.MaxObjectEntries > 0 && n > l.MaxObjectEntries {
		return MaxErr(KindMaxObjectEntriesExceeded, l.MaxObjectEntries, span)
	}
	return nil
}
