package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/zparse"
	"github.com/signadot/zparse/encode"
	"github.com/signadot/zparse/format"
	"github.com/signadot/zparse/ir"

	"github.com/scott-cotton/cli"
)

type input struct {
	path   string
	src    []byte
	format format.Format
}

// inputFiles defaults to stdin.
func inputFiles(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func (cfg *MainConfig) load(cc *cli.Context, path string) (*input, error) {
	f, err := cfg.inFormat(path)
	if err != nil {
		return nil, err
	}
	var r io.Reader
	if path != "-" {
		fd, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer fd.Close()
		r = fd
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return &input{path: path, src: d, format: f}, nil
}

func (cfg *MainConfig) parse(in *input) (*ir.Value, error) {
	v, err := zparse.ParseWithOptions(in.src, in.format, cfg.convertOpts())
	if err != nil {
		return nil, &sourceErr{path: in.path, src: in.src, err: err}
	}
	return v, nil
}

func (cfg *MainConfig) getObjFile(cc *cli.Context, path string) (*ir.Value, format.Format, error) {
	in, err := cfg.load(cc, path)
	if err != nil {
		return nil, 0, err
	}
	v, err := cfg.parse(in)
	if err != nil {
		return nil, 0, err
	}
	return v, in.format, nil
}

func writeValue(w io.Writer, v *ir.Value, opts ...encode.EncodeOption) error {
	if err := encode.Encode(v, w, opts...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	_, err := w.Write([]byte("\n"))
	return err
}
