package zparse

import (
	"strings"

	"github.com/signadot/zparse/encode"
	"github.com/signadot/zparse/format"
	"github.com/signadot/zparse/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders the differences between from and to as lines of indented
// JSON prefixed with "-", "+" or " ".  It returns "" when the two encode
// identically.
func Diff(from, to *ir.Value) (string, error) {
	a, err := Encode(from, format.JSONFormat, encode.EncodeIndent(2))
	if err != nil {
		return "", err
	}
	b, err := Encode(to, format.JSONFormat, encode.EncodeIndent(2))
	if err != nil {
		return "", err
	}
	if a == b {
		return "", nil
	}
	dmp := diffpatch.New()
	ra, rb, lines := dmp.DiffLinesToRunes(a+"\n", b+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(ra, rb, false), lines)
	var sb strings.Builder
	for i := range diffs {
		d := &diffs[i]
		prefix := " "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
		case diffpatch.DiffInsert:
			prefix = "+"
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(ln)
		}
	}
	return sb.String(), nil
}
