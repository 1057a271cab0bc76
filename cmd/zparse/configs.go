package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/zparse"
	"github.com/signadot/zparse/encode"
	"github.com/signadot/zparse/format"

	"github.com/scott-cotton/cli"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	Indent  int  `cli:"name=indent desc='indentation for json output, 0 for compact'"`
	Depth   int  `cli:"name=depth desc='maximum nesting depth, 0 for unlimited'"`
	Size    int  `cli:"name=size desc='maximum input size in bytes, 0 for unlimited'"`
	StrLen  int  `cli:"name=strlen desc='maximum string length, 0 for unlimited'"`
	Entries int  `cli:"name=entries desc='maximum object entries, 0 for unlimited'"`

	JSONComments       bool `cli:"name=jc desc='allow comments in json input'"`
	JSONTrailingCommas bool `cli:"name=jt desc='allow trailing commas in json input'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func newMainConfig() *MainConfig {
	def := zparse.DefaultConfig()
	return &MainConfig{
		Depth: def.MaxDepth,
		Size:  def.MaxSize,
	}
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) limits() zparse.Config {
	return zparse.Config{
		MaxDepth:         cfg.Depth,
		MaxSize:          cfg.Size,
		MaxStringLength:  cfg.StrLen,
		MaxObjectEntries: cfg.Entries,
	}
}

func (cfg *MainConfig) convertOpts() zparse.ConvertOptions {
	return zparse.ConvertOptions{
		Config:             cfg.limits(),
		JSONComments:       cfg.JSONComments,
		JSONTrailingCommas: cfg.JSONTrailingCommas,
	}
}

// inFormat is -I if given, else inferred from path.
func (cfg *MainConfig) inFormat(path string) (format.Format, error) {
	if cfg.InFormat != nil {
		return *cfg.InFormat, nil
	}
	if path == "-" {
		return 0, fmt.Errorf("%w: -I is required when reading stdin", cli.ErrUsage)
	}
	return format.FromPath(path)
}

// outFormat is -O if given, else def.
func (cfg *MainConfig) outFormat(def format.Format) format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return def
}

func (cfg *MainConfig) encOpts(w io.Writer, f format.Format) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(f),
		encode.EncodeIndent(cfg.Indent),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor is -color if given, else whether w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		color.NoColor = false
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type ParseConfig struct {
	*MainConfig

	Parse *cli.Command
}

type ConvertConfig struct {
	*MainConfig
	Watch bool `cli:"name=watch desc='convert again whenever an input file changes'"`

	Convert *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type EvalConfig struct {
	*MainConfig
	Env    map[string]any
	Expand bool `cli:"name=x desc='expand $[expr] and .[expr] strings in the documents instead'"`

	Eval *cli.Command
}

type PatchConfig struct {
	*MainConfig

	Patch *cli.Command
}

type RoundtripConfig struct {
	*MainConfig
	Via *format.Format

	Roundtrip *cli.Command
}
