package json

import "github.com/signadot/zparse/token"

type parseOpts struct {
	limits         token.Limits
	comments       bool
	trailingCommas bool
}

type ParseOption func(*parseOpts)

func newParseOpts(opts []ParseOption) *parseOpts {
	o := &parseOpts{limits: token.DefaultLimits()}
	for _, f := range opts {
		f(o)
	}
	return o
}

// WithLimits replaces the default limits.
func WithLimits(l token.Limits) ParseOption {
	return func(o *parseOpts) { o.limits = l }
}

// AllowComments accepts // line and /* block */ comments between tokens.
func AllowComments(v bool) ParseOption {
	return func(o *parseOpts) { o.comments = v }
}

// AllowTrailingCommas accepts a comma before a closing '}' or ']'.
func AllowTrailingCommas(v bool) ParseOption {
	return func(o *parseOpts) { o.trailingCommas = v }
}
