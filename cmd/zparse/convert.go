package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/signadot/zparse"

	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.OutFormat == nil {
		return fmt.Errorf("%w: convert requires -O", cli.ErrUsage)
	}
	files := inputFiles(args)
	if !cfg.Watch {
		return convertAll(cfg, cc, files)
	}
	if slices.Contains(files, "-") {
		return fmt.Errorf("%w: -watch requires files", cli.ErrUsage)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := convertAll(cfg, cc, files); err != nil {
		theLog.Error("convert", "error", err)
	}
	return watchFiles(ctx, files, func(changed []string) {
		theLog.Info("changed", "files", strings.Join(changed, ","))
		if err := convertAll(cfg, cc, files); err != nil {
			theLog.Error("convert", "error", err)
		}
	})
}

func convertAll(cfg *ConvertConfig, cc *cli.Context, files []string) error {
	if cfg.Watch && cfg.CloseOut != nil {
		if f, ok := cc.Out.(*os.File); ok {
			if err := f.Truncate(0); err != nil {
				return err
			}
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				return err
			}
		}
	}
	for _, file := range files {
		if err := convertFile(cfg, cc, file); err != nil {
			return err
		}
	}
	return nil
}

func convertFile(cfg *ConvertConfig, cc *cli.Context, file string) error {
	in, err := cfg.load(cc, file)
	if err != nil {
		return err
	}
	to := *cfg.OutFormat
	opts := cfg.convertOpts()
	opts.Encode = cfg.encOpts(cc.Out, to)
	out, err := zparse.ConvertWithOptions(string(in.src), in.format, to, opts)
	if err != nil {
		return &sourceErr{path: file, src: in.src, err: err}
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = io.WriteString(cc.Out, out)
	return err
}
