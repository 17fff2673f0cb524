package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes the SHA-256 of data as a 64-character hex string.
// Full length avoids collisions between similar geometry keys.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
