package main

import (
	"fmt"
	"strings"

	"github.com/signadot/zparse"
	"github.com/signadot/zparse/format"
	"github.com/signadot/zparse/ir"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func zEval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	tool := zparse.DefaultTool()
	tool.Env = cfg.Env
	if cfg.Expand {
		return evalFiles(cfg, cc, inputFiles(args), func(doc *ir.Value) (*ir.Value, error) {
			return tool.Run(doc)
		})
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: eval requires an expression or -x", cli.ErrUsage)
	}
	expr := args[0]
	return evalFiles(cfg, cc, inputFiles(args[1:]), func(doc *ir.Value) (*ir.Value, error) {
		return tool.Eval(doc, expr)
	})
}

func evalFiles(cfg *EvalConfig, cc *cli.Context, files []string, f func(*ir.Value) (*ir.Value, error)) error {
	for _, file := range files {
		doc, inFmt, err := cfg.getObjFile(cc, file)
		if err != nil {
			return err
		}
		res, err := f(doc)
		if err != nil {
			return fmt.Errorf("error evaluating %s: %w", file, err)
		}
		outFmt := format.JSONFormat
		if cfg.Expand {
			outFmt = inFmt
		}
		if err := writeValue(cc.Out, res, cfg.encOpts(cc.Out, cfg.outFormat(outFmt))...); err != nil {
			return err
		}
	}
	return nil
}

func envFunc(env map[string]any, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok {
		return fmt.Errorf("%w: argument %q expected key=val", cli.ErrUsage, a)
	}
	var v any
	err := yaml.Unmarshal([]byte(val), &v)
	if err != nil {
		return err
	}
	parts := strings.Split(key, ".")
	n := len(parts)
	tmpEnv := env
	for i, part := range parts {
		if i == n-1 {
			tmpEnv[part] = v
			break
		}
		next := tmpEnv[part]
		if next == nil {
			next = map[string]any{}
			tmpEnv[part] = next
		}
		nextEnv, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot access %s, list or scalar", strings.Join(parts[:i+1], "."))
		}
		tmpEnv = nextEnv
	}
	return nil
}
