package cache

import (
	"fmt"
	"net/url"

	"github.com/cespare/xxhash/v2"
)

// Key derives a deterministic cache key from the full set of query
// parameters. The digest input is the canonical encoding of the set: names
// sorted, every name and value percent-escaped. Equivalent parameter sets
// collide to the same key regardless of arrival order, while a value that
// contains separator characters cannot alias a different parameter set.
// Repeated values for one name keep their order.
//
// xxhash is a non-cryptographic hash: the requirement is protection against
// accidental aliasing of parameter sets, not against adversaries.
func Key(prefix string, params url.Values) string {
	return fmt.Sprintf("%s%016x", prefix, xxhash.Sum64String(params.Encode()))
}
