package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := newMainConfig()
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, toml/t, yaml/y, xml/x (default from file extension)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, toml/t, yaml/y, xml/x",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "zparse").
		WithSynopsis("zparse [opts] command [opts]").
		WithDescription("zparse converts documents between json, toml, yaml and xml.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return zMain(cfg, cc, args)
		}).
		WithSubs(
			ParseCommand(cfg),
			ConvertCommand(cfg),
			GetCommand(cfg),
			EvalCommand(cfg),
			PatchCommand(cfg),
			RoundtripCommand(cfg))
}

func ParseCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ParseConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Parse, "parse").
		WithAliases("p").
		WithSynopsis("parse [files]").
		WithDescription("parse documents and print them as indented json").
		WithRun(func(cc *cli.Context, args []string) error {
			return parse(cfg, cc, args)
		})
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Convert, "convert").
		WithAliases("c", "conv").
		WithSynopsis("convert [-watch] [files]").
		WithDescription("convert documents to the -O format").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return convert(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g").
		WithSynopsis("get <gjson-path> [files]").
		WithDescription("get elements of documents by gjson path").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func EvalCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EvalConfig{MainConfig: mainCfg, Env: map[string]any{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "e",
			Description: "bind a variable, the value is read as yaml",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(envOptTypeFunc(cfg.Env)), "(path=val)"),
		})

	cmd := cli.NewCommand("eval").
		WithAliases("e", "ev").
		WithSynopsis("eval [-e path=val [ -e path2=val2 ]...] <expr> [files] or eval -x [files]").
		WithDescription("evaluate an expression with each document bound as doc").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return zEval(cfg, cc, args)
		})
	cfg.Eval = cmd
	return cmd
}

func envOptTypeFunc(env map[string]any) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		if err := envFunc(env, a); err != nil {
			return nil, err
		}
		return 0, nil
	}
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("patch").
		WithSynopsis("patch <patchfile> [files]").
		WithDescription("apply a json merge patch, written in any format, to documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

func RoundtripCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RoundtripConfig{MainConfig: mainCfg}
	opts := []*cli.Opt{
		&cli.Opt{
			Name:        "via",
			Description: "intermediate format",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.Via), "(format)"),
		},
	}
	return cli.NewCommandAt(&cfg.Roundtrip, "roundtrip").
		WithAliases("rt").
		WithSynopsis("roundtrip -via <format> [files]").
		WithDescription("convert documents to a format and back, showing what was lost").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return roundtrip(cfg, cc, args)
		})
}
