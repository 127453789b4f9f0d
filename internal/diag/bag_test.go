package diag

import (
	"testing"

	"layoutlex/internal/source"
)

func TestBagLimitSortDedup(t *testing.T) {
	b := NewBag(4)
	r := BagReporter{Bag: b, File: 1}
	at := func(off uint32) source.Span { return source.Span{Text: "x", Off: off} }

	r.Report(LexControlBytes, SevWarning, at(5), "late", nil)
	r.Report(LexTooLarge, SevError, at(0), "early", nil)
	r.Report(LexControlBytes, SevWarning, at(5), "late", nil)
	BagReporter{Bag: b, File: 0}.Report(CmtIndentMismatch, SevInfo, at(9), "other file", nil)
	if b.Add(NewError(LexBrokenStream, at(1), "over limit")) {
		t.Fatalf("bag accepted diagnostic past its limit")
	}

	b.Sort()
	b.Dedup()
	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if items[0].File != 0 || items[1].Message != "early" || items[2].Message != "late" {
		t.Fatalf("unexpected order: %+v", items)
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("expected errors and warnings")
	}
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: b})
	sp := source.Span{Text: "ab", Off: 3}
	ReportWarning(r, LexTrailingSpace, sp, "trailing").Emit()
	ReportWarning(r, LexTrailingSpace, sp, "trailing").Emit()
	ReportWarning(r, LexTrailingSpace, sp, "different").WithNote(sp, "here").Emit()
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	if len(b.Items()[1].Notes) != 1 {
		t.Fatalf("note lost: %+v", b.Items()[1])
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexTooLarge:         "LEX1001",
		CmtIndentMismatch:   "CMT4001",
		CfgInvalidDelimiter: "CFG4100",
		IntOutOfRange:       "INT5004",
		IOLoadFileError:     "IO9001",
		UnknownCode:         "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("ID() = %q, want %q", got, want)
		}
	}
	if got := Code(4242).Title(); got != "Unknown error" {
		t.Errorf("Title() = %q", got)
	}
}

func TestBagDroppedAndFilter(t *testing.T) {
	b := NewBag(2)
	sp := source.Span{Text: "x"}
	b.Add(New(SevInfo, LexTrailingSpace, sp, "info"))
	b.Add(New(SevWarning, LexMixedLineEndings, sp, "warn"))
	b.Add(NewError(LexBrokenStream, sp, "lost"))
	if b.Dropped() != 1 {
		t.Fatalf("Dropped = %d, want 1", b.Dropped())
	}
	if b.Count(SevInfo) != 2 || b.Count(SevWarning) != 1 || b.HasErrors() {
		t.Fatalf("unexpected counts: %+v", b.Items())
	}

	warn := b.Filter(SevWarning)
	if warn.Len() != 1 || warn.Items()[0].Message != "warn" {
		t.Fatalf("Filter kept %+v", warn.Items())
	}
	if b.Len() != 2 {
		t.Fatalf("Filter modified the source bag")
	}

	other := NewBag(1)
	other.Add(NewError(LexTooLarge, sp, "big"))
	b.Merge(other)
	if b.Len() != 3 || b.Cap() != 3 || !b.HasErrors() {
		t.Fatalf("Merge: len %d cap %d", b.Len(), b.Cap())
	}
}

func TestParseSeverity(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Severity
	}{
		{"info", SevInfo},
		{" Warning", SevWarning},
		{"ERROR", SevError},
	} {
		got, err := ParseSeverity(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("ParseSeverity(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Fatalf("expected error for unknown severity")
	}
	if SevWarning.String() != "WARNING" || Severity(9).String() != "UNKNOWN" {
		t.Fatalf("unexpected String() labels")
	}
}

func TestDedupReporterCountsSuppressed(t *testing.T) {
	b := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: b})
	sp := source.Span{Text: "  ", Off: 7}
	for range 3 {
		r.Report(LexTrailingSpace, SevInfo, sp, "trailing whitespace", nil)
	}
	r.Report(LexTrailingSpace, SevWarning, sp, "trailing whitespace", nil)
	if b.Len() != 2 || r.Suppressed() != 2 {
		t.Fatalf("Len = %d, Suppressed = %d", b.Len(), r.Suppressed())
	}
	var nilReporter *DedupReporter
	nilReporter.Report(LexTrailingSpace, SevInfo, sp, "x", nil)
	if nilReporter.Suppressed() != 0 {
		t.Fatalf("nil reporter counted")
	}
}
