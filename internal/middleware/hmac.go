package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/mikl0s/JAI/pkg/hash"
)

// HMAC request headers.
const (
	HeaderHMACTimestamp = "X-HMAC-Timestamp"
	HeaderHMACSignature = "X-HMAC-Signature"
)

// MaxTimestampSkew is the accepted absolute difference between the request
// timestamp and server time. Tolerates moderate clock drift in either
// direction rather than only rejecting stale timestamps.
const MaxTimestampSkew = 300 * time.Second

// CanonicalString builds the signed message for a request. The layout is
// part of the wire contract and must stay bit-exact:
// METHOD + PATH + RAW_BODY (if non-empty) + TIMESTAMP.
func CanonicalString(method, path string, body []byte, timestamp int64) string {
	msg := method + path
	if len(body) > 0 {
		msg += string(body)
	}
	return msg + strconv.FormatInt(timestamp, 10)
}

// Sign computes the hex HMAC-SHA256 signature for a request tuple.
// Exported for tests and client tooling.
func Sign(secret, method, path string, body []byte, timestamp int64) string {
	return hash.HMACSHA256Hex(secret, CanonicalString(method, path, body, timestamp))
}

// HMACVerifier gates mutating endpoints on a time-boxed keyed-hash
// signature. It rejects before any handler logic runs, so a request that
// fails authenticity never reaches database-backed checks.
type HMACVerifier struct {
	secret string
	now    func() time.Time
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: secret, now: time.Now}
}

// VerifyRequest checks the header pair against the request tuple.
// Returns a human-readable rejection reason, or "" when valid.
func (v *HMACVerifier) VerifyRequest(method, path string, body []byte, timestampHeader, signatureHeader string) string {
	if timestampHeader == "" || signatureHeader == "" {
		return "Missing HMAC headers"
	}

	timestamp, err := strconv.ParseInt(timestampHeader, 10, 64)
	if err != nil {
		return "Invalid timestamp format"
	}

	skew := v.now().Unix() - timestamp
	if skew < 0 {
		skew = -skew
	}
	if skew > int64(MaxTimestampSkew/time.Second) {
		return "Timestamp expired"
	}

	expected := Sign(v.secret, method, path, body, timestamp)
	if !hash.SecureCompare(expected, signatureHeader) {
		return "Invalid HMAC signature"
	}
	return ""
}

// Handler returns the Fiber middleware enforcing the signature gate.
func (v *HMACVerifier) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		reason := v.VerifyRequest(
			c.Method(),
			c.Path(),
			c.Body(),
			c.Get(HeaderHMACTimestamp),
			c.Get(HeaderHMACSignature),
		)
		if reason != "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, reason)
		}
		return c.Next()
	}
}
