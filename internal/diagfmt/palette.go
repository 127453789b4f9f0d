package diagfmt

import (
	"github.com/fatih/color"

	"layoutlex/internal/diag"
	"layoutlex/internal/source"
)

type sprint func(a ...interface{}) string

// palette holds the colour functions for one output call. With colour off
// every function prints its arguments unchanged.
type palette struct {
	err, warn, info sprint
	bold, dim       sprint
	note, path      sprint
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) sprint {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		err:  mk(color.FgRed, color.Bold),
		warn: mk(color.FgYellow, color.Bold),
		info: mk(color.FgBlue, color.Bold),
		bold: mk(color.Bold),
		dim:  mk(color.Faint),
		note: mk(color.FgCyan),
		path: mk(color.FgWhite, color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) sprint {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// lookupFile returns nil for ids the set does not know.
func lookupFile(fs *source.FileSet, id source.FileID) *source.File {
	if fs == nil || int(id) >= fs.Len() {
		return nil
	}
	return fs.Get(id)
}

func formatPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
