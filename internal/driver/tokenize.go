package driver

import (
	"errors"

	"layoutlex/internal/config"
	"layoutlex/internal/diag"
	"layoutlex/internal/lexer"
	"layoutlex/internal/source"
	"layoutlex/internal/token"
)

// TokenizeOptions control a single-file tokenization.
type TokenizeOptions struct {
	MaxDiagnostics int
	// WarnControls reports runs of control bytes.
	WarnControls bool
	// Lint runs Check on the produced stream.
	Lint bool
}

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Lex     *lexer.Lex // nil, если лексер упал
	Bag     *diag.Bag
}

// Tokens returns the token stream, or nil when lexing failed.
func (r *TokenizeResult) Tokens() []token.Token {
	if r == nil || r.Lex == nil {
		return nil
	}
	return r.Lex.Tokens()
}

// Tokenize loads path and lexes it. Only I/O failures are returned as
// errors; lexing failures end up in the result's Bag.
func Tokenize(path string, opts TokenizeOptions) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return tokenizeFile(fs, fileID, opts), nil
}

// TokenizeSource lexes an in-memory buffer registered under name.
func TokenizeSource(name string, content []byte, opts TokenizeOptions) *TokenizeResult {
	fs := source.NewFileSet()
	return tokenizeFile(fs, fs.AddVirtual(name, content), opts)
}

func tokenizeFile(fs *source.FileSet, fileID source.FileID, opts TokenizeOptions) *TokenizeResult {
	file := fs.Get(fileID)
	bag := newBag(opts.MaxDiagnostics)
	lex, _ := lexFile(file, bag, opts)
	return &TokenizeResult{FileSet: fs, File: file, Lex: lex, Bag: bag}
}

// newBag treats a non-positive limit as the default one.
func newBag(maxDiagnostics int) *diag.Bag {
	if maxDiagnostics <= 0 {
		maxDiagnostics = config.DefaultMaxDiagnostics
	}
	return diag.NewBag(maxDiagnostics)
}

// lexFile runs the lexer over file, reporting into bag.
func lexFile(file *source.File, bag *diag.Bag, opts TokenizeOptions) (*lexer.Lex, error) {
	reporter := (&lexer.ReporterAdapter{Bag: bag, File: file.ID}).Reporter()
	lx := lexer.New(file.Content, lexer.Options{
		Reporter:     reporter,
		WarnControls: opts.WarnControls,
	})
	lex, err := lx.Lex()
	if err != nil {
		// отказ по размеру до первого токена лексер сам не репортит
		if errors.Is(err, lexer.ErrTooLarge) && !bag.HasErrors() {
			reporter.Report(diag.LexTooLarge, diag.SevError, source.Span{}, err.Error(), nil)
		}
		return nil, err
	}
	if opts.Lint {
		Check(lex, reporter)
	}
	return lex, nil
}
