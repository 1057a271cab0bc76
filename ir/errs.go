package ir

import "errors"

var ErrUnsupportedType = errors.New("unsupported type")
