package main

import (
	"errors"
	"fmt"
	"io"

	"layoutlex/internal/diag"
	"layoutlex/internal/diagfmt"
	"layoutlex/internal/source"
)

// errHasErrors is returned by commands whose input produced error diagnostics.
var errHasErrors = errors.New("errors reported")

// printDiagnostics writes bag to w when it holds anything.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, color bool) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	err := diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:     color,
		Context:   2,
		ShowNotes: true,
	})
	if err == nil && bag.Dropped() > 0 {
		_, err = fmt.Fprintf(w, "... %d more diagnostic(s) over the --max-diagnostics limit\n", bag.Dropped())
	}
	return err
}
