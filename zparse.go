package zparse

import (
	"bytes"

	"github.com/signadot/zparse/debug"
	"github.com/signadot/zparse/encode"
	"github.com/signadot/zparse/format"
	"github.com/signadot/zparse/ir"
	"github.com/signadot/zparse/json"
	"github.com/signadot/zparse/token"
	"github.com/signadot/zparse/toml"
	"github.com/signadot/zparse/xml"
	"github.com/signadot/zparse/yaml"
)

// Config bounds what a parser accepts.  A zero field is unlimited.
type Config = token.Limits

// DefaultConfig limits depth to 128 and size to 10 MiB.
func DefaultConfig() Config {
	return token.DefaultLimits()
}

// Parse parses input in format f with DefaultConfig.  XML is mapped with
// xml.ToValue.
func Parse(input []byte, f format.Format) (*ir.Value, error) {
	return ParseWithConfig(input, f, DefaultConfig())
}

func ParseWithConfig(input []byte, f format.Format, cfg Config) (*ir.Value, error) {
	opts := DefaultConvertOptions()
	opts.Config = cfg
	return parse(input, f, &opts)
}

// ParseWithOptions parses with the Config and JSON settings of opts.
func ParseWithOptions(input []byte, f format.Format, opts ConvertOptions) (*ir.Value, error) {
	return parse(input, f, &opts)
}

// ParseXML parses an XML document without mapping it to a value.
func ParseXML(input []byte, cfg Config) (*xml.Document, error) {
	return xml.Parse(input, xml.WithLimits(cfg))
}

func parse(input []byte, f format.Format, opts *ConvertOptions) (*ir.Value, error) {
	switch f {
	case format.JSONFormat:
		return json.Parse(input,
			json.WithLimits(opts.Config),
			json.AllowComments(opts.JSONComments),
			json.AllowTrailingCommas(opts.JSONTrailingCommas))
	case format.TOMLFormat:
		return toml.Parse(input, toml.WithLimits(opts.Config))
	case format.YAMLFormat:
		return yaml.Parse(input, yaml.WithLimits(opts.Config))
	case format.XMLFormat:
		doc, err := ParseXML(input, opts.Config)
		if err != nil {
			return nil, err
		}
		return xml.ToValue(doc), nil
	}
	return nil, format.ErrBadFormat
}

// ConvertOptions configures ConvertWithOptions.
type ConvertOptions struct {
	Config Config

	// JSONComments and JSONTrailingCommas relax JSON input.
	JSONComments       bool
	JSONTrailingCommas bool

	// Encode is applied after the output format option, so it may set
	// indentation or colors.
	Encode []encode.EncodeOption
}

func DefaultConvertOptions() ConvertOptions {
	return ConvertOptions{Config: DefaultConfig()}
}

// Convert converts input from one format to another with the default
// options.  Converting a format to itself returns input unchanged.
func Convert(input string, from, to format.Format) (string, error) {
	return ConvertWithOptions(input, from, to, DefaultConvertOptions())
}

func ConvertWithOptions(input string, from, to format.Format, opts ConvertOptions) (string, error) {
	if from == to {
		return input, nil
	}
	if debug.Convert() {
		debug.Logf("convert %s -> %s (%d bytes)\n", from, to, len(input))
	}
	v, err := parse([]byte(input), from, &opts)
	if err != nil {
		return "", err
	}
	return Encode(v, to, opts.Encode...)
}

// Encode serializes v in format f.
func Encode(v *ir.Value, f format.Format, opts ...encode.EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	opts = append([]encode.EncodeOption{encode.EncodeFormat(f)}, opts...)
	if err := encode.Encode(v, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}
