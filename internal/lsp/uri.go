package lsp

import (
	"net/url"
	"path/filepath"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const fileScheme = "file://"

// uriToPath names a buffer: the local path of a file URI, or the URI itself
// for other schemes (untitled:, git:) so diagnostics still carry a name.
func uriToPath(uri protocol.DocumentUri) string {
	rest, ok := strings.CutPrefix(uri, fileScheme)
	if !ok {
		return uri
	}
	if !strings.HasPrefix(rest, "/") {
		// file://host/share/x
		rest = "//" + rest
	}
	path, err := url.PathUnescape(rest)
	if err != nil {
		return uri
	}
	// file:///C:/x
	if filepath.Separator == '\\' && len(path) > 2 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path)
}

func pathToURI(path string) protocol.DocumentUri {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return fileScheme + (&url.URL{Path: slashed}).EscapedPath()
}
