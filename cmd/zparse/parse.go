package main

import (
	"fmt"

	"github.com/signadot/zparse/encode"
	"github.com/signadot/zparse/format"

	"github.com/scott-cotton/cli"
)

func parse(cfg *ParseConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse.Parse(cc, args)
	if err != nil {
		cfg.Parse.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, file := range inputFiles(args) {
		v, _, err := cfg.getObjFile(cc, file)
		if err != nil {
			return err
		}
		opts := cfg.encOpts(cc.Out, format.JSONFormat)
		if cfg.Indent == 0 {
			opts = append(opts, encode.EncodeIndent(2))
		}
		if err := writeValue(cc.Out, v, opts...); err != nil {
			return fmt.Errorf("error writing %s: %w", file, err)
		}
	}
	return nil
}
