package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// keyPrecision is the number of significant fractional digits a parameter
// contributes to the canonical key. Two values differing only beyond this
// precision hash identically, so floating noise cannot cause pathological
// cache misses; physically distinct inputs still never collide.
const keyPrecision = 12

// CanonicalKey derives the cache key for the request: the calculation type
// plus a normalized serialization of the parameters (names sorted, values
// formatted at fixed precision), hashed with SHA-256. Field order in Inputs
// is irrelevant.
func (r CalculationRequest) CanonicalKey() string {
	names := make([]string, 0, len(r.Inputs))
	for name := range r.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(string(r.Type))
	for _, name := range names {
		b.WriteByte('|')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(r.Inputs[name], 'e', keyPrecision, 64))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
