package lexer

import (
	"layoutlex/internal/diag"
	"layoutlex/internal/source"
)

// DefaultCapacity is the initial token buffer size.
const DefaultCapacity = 4 * 1024

type Options struct {
	Reporter diag.Reporter // может быть nil, тогда диагностики не пишем
	// Capacity preallocates the token slice; 0 means DefaultCapacity.
	Capacity int
	// WarnControls reports runs of control bytes as warnings.
	WarnControls bool
}

func (lx *Lexer) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}
