package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// hashKey derives the on-disk name for a key: a sha256 digest truncated to
// 16 hex characters. Keys here are logo URLs, which are too long and too
// punctuated to be filenames themselves.
func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}
