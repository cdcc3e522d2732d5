package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// HMACSHA256Hex returns the hex-encoded HMAC-SHA256 of message under secret.
func HMACSHA256Hex(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// SecureCompare reports whether two hex digests are equal in constant time.
func SecureCompare(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}

// LeadingHexZeros counts the leading '0' characters of a hex digest.
// Used to evaluate proof-of-work difficulty.
func LeadingHexZeros(digest string) int {
	n := 0
	for _, c := range digest {
		if c != '0' {
			break
		}
		n++
	}
	return n
}
