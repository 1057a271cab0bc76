package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/zparse/token"

	"github.com/fatih/color"
)

// sourceErr renders a parse error with the offending line and a caret
// under the error column.
type sourceErr struct {
	path string
	src  []byte
	err  error
}

func (e *sourceErr) Error() string {
	return describe(e.path, e.src, e.err)
}

func (e *sourceErr) Unwrap() error {
	return e.err
}

var (
	caretColor = color.New(color.FgRed, color.Bold).SprintFunc()
	pathColor  = color.New(color.Bold).SprintFunc()
)

func describe(path string, src []byte, err error) string {
	var te *token.Error
	if !errors.As(err, &te) || te.Span.IsEmpty() {
		return fmt.Sprintf("%s: %v", pathColor(path), err)
	}
	pos := te.Span.Start
	line := sourceLine(src, pos.Offset)
	pad := make([]byte, 0, pos.Col)
	for i := 0; i < pos.Col-1 && i < len(line); i++ {
		if line[i] == '\t' {
			pad = append(pad, '\t')
			continue
		}
		pad = append(pad, ' ')
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:%d:%d: %v\n", pathColor(path), pos.Line, pos.Col, err)
	fmt.Fprintf(&sb, "  %s\n", line)
	fmt.Fprintf(&sb, "  %s%s", pad, caretColor("^"))
	return sb.String()
}

// sourceLine returns the line of src holding offset, without its newline.
func sourceLine(src []byte, offset int) string {
	offset = min(offset, len(src))
	start := bytes.LastIndexByte(src[:offset], '\n') + 1
	end := bytes.IndexByte(src[offset:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += offset
	}
	return strings.TrimSuffix(string(src[start:end]), "\r")
}
