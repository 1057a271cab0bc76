package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	JSONFormat Format = iota
	TOMLFormat
	YAMLFormat
	XMLFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"j":    JSONFormat,
		"json": JSONFormat,
		"t":    TOMLFormat,
		"toml": TOMLFormat,
		"y":    YAMLFormat,
		"yml":  YAMLFormat,
		"yaml": YAMLFormat,
		"x":    XMLFormat,
		"xml":  XMLFormat,
	}[strings.ToLower(v)]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FromPath infers the format from the extension of path, ignoring case.
func FromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSONFormat, nil
	case ".toml":
		return TOMLFormat, nil
	case ".yaml", ".yml":
		return YAMLFormat, nil
	case ".xml":
		return XMLFormat, nil
	}
	return 0, fmt.Errorf("%w: cannot infer format of %q", ErrBadFormat, path)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case JSONFormat:
		return []byte("json"), nil
	case TOMLFormat:
		return []byte("toml"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case XMLFormat:
		return []byte("xml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case JSONFormat:
		return ".json"
	case TOMLFormat:
		return ".toml"
	case YAMLFormat:
		return ".yaml"
	case XMLFormat:
		return ".xml"
	default:
		return ""
	}
}

// AllFormats returns all supported formats.
func AllFormats() []Format {
	return []Format{JSONFormat, TOMLFormat, YAMLFormat, XMLFormat}
}
