package utils

import (
	"crypto"
	_ "crypto/sha256"
	"encoding/hex"
)

// Sha256Encode encode a byte array
func Sha256Encode(buffer []byte) (sha256String string, sha256Bytes []byte) {
	h := crypto.SHA256.New()
	h.Write(buffer)
	hashSlice := h.Sum(nil)
	return hex.EncodeToString(hashSlice), hashSlice
}

// Fingerprint returns a short hex digest suitable for log output where the
// full value must not appear.
func Fingerprint(buffer []byte) string {
	s, _ := Sha256Encode(buffer)
	return s[:16]
}
