// Package diag defines the diagnostic model shared by the lexer, the comment
// extractor, the config loader and the driver.
//
// Producers emit through a Reporter so that storage and rendering stay out of
// the core packages. BagReporter collects into a bounded Bag; DedupReporter
// filters repeats. Rendering lives in internal/diagfmt.
//
// A Diagnostic locates its finding with a source.Span (0-based line and byte
// position plus absolute offset) and the FileID the span was cut from.
package diag
