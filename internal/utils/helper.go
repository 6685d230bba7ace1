package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash is the hex sha256 of body.
func ContentHash(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// ETag quotes a strong entity tag for body.
func ETag(body []byte) string {
	return `"` + ContentHash(body)[:32] + `"`
}
