package xml

import "github.com/signadot/zparse/token"

type parseOpts struct {
	limits token.Limits
}

type ParseOption func(*parseOpts)

func newParseOpts(opts []ParseOption) *parseOpts {
	o := &parseOpts{limits: token.DefaultLimits()}
	for _, f := range opts {
		f(o)
	}
	return o
}

func WithLimits(l token.Limits) ParseOption {
	return func(o *parseOpts) { o.limits = l }
}
