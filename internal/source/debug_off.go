//go:build !layoutlex_debug

package source

// CheckInvariants enables precondition assertions on the unchecked fast paths
// (Split, lexer stream construction, config setters). Build with
// -tags layoutlex_debug to turn them on.
const CheckInvariants = false
