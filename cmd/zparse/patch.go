package main

import (
	"fmt"

	"github.com/signadot/zparse"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file", cli.ErrUsage)
	}
	p, _, err := cfg.getObjFile(cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding patch: %w", err)
	}
	for _, file := range inputFiles(args[1:]) {
		if file == "-" && args[0] == "-" {
			return fmt.Errorf("%w: patch and document cannot both be stdin", cli.ErrUsage)
		}
		target, f, err := cfg.getObjFile(cc, file)
		if err != nil {
			return err
		}
		res, err := zparse.MergePatch(target, p)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", file, err)
		}
		if err := writeValue(cc.Out, res, cfg.encOpts(cc.Out, cfg.outFormat(f))...); err != nil {
			return err
		}
	}
	return nil
}
