package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/zparse"
	"github.com/signadot/zparse/format"
	"github.com/signadot/zparse/ir"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func roundtrip(cfg *RoundtripConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Roundtrip.Parse(cc, args)
	if err != nil {
		cfg.Roundtrip.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Via == nil {
		return fmt.Errorf("%w: roundtrip requires -via", cli.ErrUsage)
	}
	lossy := 0
	for _, file := range inputFiles(args) {
		in, err := cfg.load(cc, file)
		if err != nil {
			return err
		}
		orig, err := cfg.parse(in)
		if err != nil {
			return err
		}
		back, err := roundtripValue(orig, in.format, *cfg.Via, cfg.limits())
		if err != nil {
			return fmt.Errorf("error converting %s via %s: %w", file, *cfg.Via, err)
		}
		d, err := zparse.Diff(orig, back)
		if err != nil {
			return err
		}
		if d == "" {
			theLog.Info("lossless", "file", file, "via", cfg.Via.String())
			continue
		}
		lossy++
		fmt.Fprintf(cc.Out, "--- %s\n+++ %s via %s\n", file, file, cfg.Via)
		writeDiff(cc.Out, d, cfg.useColor(cc.Out))
	}
	if lossy > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// roundtripValue converts v to via and back to f.
func roundtripValue(v *ir.Value, f, via format.Format, cfg zparse.Config) (*ir.Value, error) {
	mid, err := zparse.Encode(v, via)
	if err != nil {
		return nil, err
	}
	midV, err := zparse.ParseWithConfig([]byte(mid), via, cfg)
	if err != nil {
		return nil, err
	}
	out, err := zparse.Encode(midV, f)
	if err != nil {
		return nil, err
	}
	return zparse.ParseWithConfig([]byte(out), f, cfg)
}

func writeDiff(w io.Writer, d string, useColor bool) {
	if !useColor {
		io.WriteString(w, d)
		return
	}
	del := color.New(color.FgRed).SprintFunc()
	ins := color.New(color.FgGreen).SprintFunc()
	for _, ln := range strings.SplitAfter(d, "\n") {
		switch {
		case strings.HasPrefix(ln, "-"):
			io.WriteString(w, del(strings.TrimSuffix(ln, "\n"))+"\n")
		case strings.HasPrefix(ln, "+"):
			io.WriteString(w, ins(strings.TrimSuffix(ln, "\n"))+"\n")
		default:
			io.WriteString(w, ln)
		}
	}
}
