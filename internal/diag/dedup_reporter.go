package diag

import "layoutlex/internal/source"

// rangeKey identifies a diagnostic by code and primary range.
type rangeKey struct {
	code  Code
	file  source.FileID
	start uint32
	end   uint32
}

type reportKey struct {
	rangeKey
	sev Severity
	msg string
}

// DedupReporter forwards each distinct report once.
type DedupReporter struct {
	next       Reporter
	seen       map[reportKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[reportKey]struct{}),
	}
}

// Suppressed is the number of repeated reports that were not forwarded.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := reportKey{
		rangeKey: rangeKey{code: code, start: primary.Off, end: primary.End()},
		sev:      sev,
		msg:      msg,
	}
	if _, ok := r.seen[key]; ok {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}
