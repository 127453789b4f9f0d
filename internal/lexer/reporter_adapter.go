package lexer

import (
	"layoutlex/internal/diag"
	"layoutlex/internal/source"
)

// ReporterAdapter адаптирует diag.Bag для использования в лексере
type ReporterAdapter struct {
	Bag  *diag.Bag
	File source.FileID
}

// Reporter returns a diag.Reporter that forwards diagnostics to the adapter's bag.
func (r *ReporterAdapter) Reporter() diag.Reporter {
	return diag.BagReporter{Bag: r.Bag, File: r.File}
}
