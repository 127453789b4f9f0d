package fuzztests

import (
	"strings"
	"testing"

	"layoutlex/internal/diag"
	"layoutlex/internal/lexer"
	"layoutlex/internal/source"
	"layoutlex/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) string {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return string(input)
}

func FuzzLexerRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		src := clampInput(input)

		bag := diag.NewBag(64)
		lex, err := lexer.New(src, lexer.Options{Reporter: diag.BagReporter{Bag: bag}, WarnControls: true}).Lex()
		if err != nil {
			t.Fatalf("lex failed on %d bytes: %v", len(src), err)
		}
		var sb strings.Builder
		for _, tok := range lex.Tokens() {
			sb.WriteString(tok.Text())
		}
		if sb.String() != src {
			t.Fatalf("tokens do not reproduce the input %q", src)
		}
		if err := testkit.CheckTokens(src, lex.Tokens()); err != nil {
			t.Fatal(err)
		}
		if err := lex.Validate(); err != nil {
			t.Fatal(err)
		}
		if bag.HasErrors() {
			t.Fatalf("unexpected errors: %+v", bag.Items())
		}
	})
}

func FuzzSpanSplit(f *testing.F) {
	for _, s := range layoutSeeds {
		f.Add([]byte(s), uint16(len(s)/2))
	}
	f.Add([]byte("a\r\nb"), uint16(2))
	f.Add([]byte("é"), uint16(1))
	f.Fuzz(func(t *testing.T, input []byte, at uint16) {
		span := source.NewSpan(clampInput(input))
		i := int(at)
		if !span.IsValidSplitIndex(i) {
			if _, _, err := span.SplitChecked(i); err == nil {
				t.Fatalf("SplitChecked(%d) accepted an invalid index in %q", i, span.Text)
			}
			return
		}
		if err := testkit.CheckSplit(span, i); err != nil {
			t.Fatal(err)
		}
	})
}
