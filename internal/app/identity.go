package app

import (
	"crypto/sha256"
	"encoding/hex"
)

// DeriveSessionID returns the stable identifier of one timeslot occurrence:
// a SHA-256 digest over product id and canonical start time. The upstream
// API carries no composite key of its own, so this hash is what deduplicates
// repeated fetches of the same slot across runs.
func DeriveSessionID(productID, canonicalStart string) string {
	sum := sha256.Sum256([]byte(productID + "_" + canonicalStart))
	return hex.EncodeToString(sum[:])
}
