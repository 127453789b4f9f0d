package driver

import (
	"crypto/sha256"
	"strconv"

	"layoutlex/internal/parse"
)

// Digest is a sha256 sum.
type Digest [32]byte

// combineDigest: H(content || part1 || part2 ...). Части уже в детерминированном порядке.
func combineDigest(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write(p)
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// CacheKey binds a content hash to every option that changes a file summary,
// including the diagnostics limit the cached Bag was filled under.
func CacheKey(content Digest, cfg *parse.Config, warnControls bool, maxDiagnostics int) Digest {
	if cfg == nil {
		cfg = parse.DefaultConfig()
	}
	opts := cfg.Options()
	return combineDigest(content,
		[]byte(opts.Delimiter),
		[]byte(strconv.Itoa(opts.TabWidth)),
		[]byte(strconv.FormatBool(opts.TrimComments)),
		[]byte(strconv.FormatBool(warnControls)),
		[]byte(strconv.Itoa(maxDiagnostics)),
	)
}
