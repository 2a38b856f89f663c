package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Use full SHA-256 hash (64 hex chars / 256 bits) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashStrings hashes a list of strings, preserving order.
func HashStrings(items []string) string {
	data, _ := json.Marshal(items)
	return Hash(data)
}

// FingerprintFiles hashes a scanned file list together with each file's
// content, so the fingerprint changes when a file is edited in place,
// not only when the file list changes. Unreadable files contribute
// their path with a failure marker; the graph builder reports the read
// failure itself.
func FingerprintFiles(files []string) string {
	h := sha256.New()
	for _, path := range files {
		h.Write([]byte(path))
		h.Write([]byte{0})
		data, err := os.ReadFile(path)
		if err != nil {
			h.Write([]byte("unreadable"))
		} else {
			sum := sha256.Sum256(data)
			h.Write(sum[:])
		}
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
