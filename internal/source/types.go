package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, editor buffer).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin, LSP)
	FileHadBOM
	// FileTranscoded marks UTF-16 input that was decoded to UTF-8 on load.
	FileTranscoded
)

// File captures metadata and content for a single source file.
// Content is kept byte-exact: line endings are never normalized.
type File struct {
	ID      FileID
	Path    string
	Content string
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}

// LineColOf converts a span's 0-based coordinates into a LineCol.
func LineColOf(s Span) LineCol {
	return LineCol{Line: s.Line + 1, Col: s.Pos + 1}
}
