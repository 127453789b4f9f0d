package diag

import (
	"fmt"
	"strings"
)

// Severity orders diagnostics: lint notes, layout warnings, broken input.
type Severity uint8

const (
	// SevInfo marks style findings such as trailing whitespace.
	SevInfo Severity = iota
	// SevWarning marks layout that is legal but suspicious.
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "info",
	SevWarning: "warning",
	SevError:   "error",
}

// String returns the upper-case label used in pretty output.
func (s Severity) String() string {
	if int(s) >= len(severityNames) {
		return "UNKNOWN"
	}
	return strings.ToUpper(severityNames[s])
}

// ParseSeverity accepts the lower-case names used by command-line flags.
func ParseSeverity(name string) (Severity, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for sev, n := range severityNames {
		if n == name {
			return Severity(sev), nil
		}
	}
	return SevInfo, fmt.Errorf("unknown severity %q (expected info|warning|error)", name)
}
