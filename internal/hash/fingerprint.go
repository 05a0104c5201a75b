// Package hash computes content fingerprints with xxh3.
package hash

import (
	"slices"
	"strings"

	"github.com/zeebo/xxh3"
)

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// Fingerprint returns an order-independent xxh3 hash of a set of records.
//
// Each record is a list of fields. Records are hashed in sorted order, so two
// sets with the same records produce the same fingerprint however they were
// collected.
//
// Parameters:
//   - records: Records to hash; not modified
//
// Returns:
//   - uint64: The fingerprint (xxh3 of the empty input for no records)
func Fingerprint(records [][]string) uint64 {
	lines := make([]string, len(records))
	for i, fields := range records {
		lines[i] = strings.Join(fields, fieldSep)
	}
	slices.Sort(lines)

	h := xxh3.New()
	for _, line := range lines {
		_, _ = h.WriteString(line)
		_, _ = h.WriteString(recordSep)
	}

	return h.Sum64()
}
