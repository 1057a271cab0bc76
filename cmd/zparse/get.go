package main

import (
	"fmt"

	"github.com/signadot/zparse"
	"github.com/signadot/zparse/format"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a gjson path", cli.ErrUsage)
	}
	path := args[0]
	if path == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	for _, file := range inputFiles(args[1:]) {
		doc, _, err := cfg.getObjFile(cc, file)
		if err != nil {
			return err
		}
		res, ok, err := zparse.Get(doc, path)
		if err != nil {
			return fmt.Errorf("error querying %s with %s: %w", file, path, err)
		}
		if !ok {
			theLog.Warn("no match", "file", file, "path", path)
			continue
		}
		if err := writeValue(cc.Out, res, cfg.encOpts(cc.Out, cfg.outFormat(format.JSONFormat))...); err != nil {
			return err
		}
	}
	return nil
}
