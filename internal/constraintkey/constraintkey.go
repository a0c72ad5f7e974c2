// Package constraintkey generates partition keys for unique-constraint records.
package constraintkey

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ForField computes a hash-distributed partition key for a unique field value.
// Hashing spreads constraint records across partitions, eliminating hot
// partition risk on popular field names.
func ForField(entityType, field, value string) string {
	data := fmt.Sprintf("%s#%s#%s", entityType, field, value)
	h := sha256.Sum256([]byte(data))
	return "uniq#" + hex.EncodeToString(h[:16])
}
