package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/RReverser/cfg/cerr"
)

// diagPrinter prints one lowering/parse failure per call, prefixing it with
// its cerr.Kind (colorized unless color is disabled).
type diagPrinter struct {
	w     io.Writer
	color bool
}

func newDiagPrinter(w io.Writer, enableColor bool) *diagPrinter {
	return &diagPrinter{w: w, color: enableColor}
}

func (d *diagPrinter) kindColor(kind cerr.Kind) *color.Color {
	switch kind {
	case cerr.UnsupportedNode:
		return color.New(color.FgYellow, color.Bold)
	case cerr.InvalidContinue:
		return color.New(color.FgRed, color.Bold)
	case cerr.InvariantViolated:
		return color.New(color.FgMagenta, color.Bold)
	default:
		return color.New(color.FgRed)
	}
}

// Print writes path: kind: message to d.w, or just path: message when err
// carries no cerr.Kind.
func (d *diagPrinter) Print(path string, err error) {
	kind, ok := cerr.KindOf(err)
	if !ok {
		fmt.Fprintf(d.w, "%s: %v\n", path, err)
		return
	}
	prefix := string(kind)
	if d.color {
		prefix = d.kindColor(kind).Sprint(prefix)
	}
	fmt.Fprintf(d.w, "%s: %s: %v\n", path, prefix, err)
}
