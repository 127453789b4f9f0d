package diag

import "layoutlex/internal/source"

// Reporter receives diagnostics from the lexer, the lint pass and comment
// annotation. Implementations: BagReporter, DedupReporter.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// ReportBuilder collects notes for one diagnostic; Emit sends it.
type ReportBuilder struct {
	to      Reporter
	d       Diagnostic
	emitted bool
}

func report(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: New(sev, code, primary, msg)}
}

// ReportWarning starts a SevWarning diagnostic.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return report(r, SevWarning, code, primary, msg)
}

// ReportInfo starts a SevInfo diagnostic.
func ReportInfo(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return report(r, SevInfo, code, primary, msg)
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithNote(sp, msg)
	}
	return b
}

// Emit forwards the diagnostic once; later calls do nothing.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted || b.to == nil {
		return
	}
	b.emitted = true
	b.to.Report(b.d.Code, b.d.Severity, b.d.Primary, b.d.Message, b.d.Notes)
}

// BagReporter пишет в Bag, проставляя File.
type BagReporter struct {
	Bag  *Bag
	File source.FileID
}

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	d := New(sev, code, primary, msg)
	d.File, d.Notes = r.File, notes
	r.Bag.Add(d)
}
