//go:build layoutlex_debug

package source

// CheckInvariants enables precondition assertions on the unchecked fast paths.
const CheckInvariants = true
