package middleware

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/mikl0s/JAI/pkg/hash"
)

// SessionCookie is the admin session cookie name.
const SessionCookie = "jai_admin_session"

// SessionTTL bounds how long an admin session stays valid.
const SessionTTL = 24 * time.Hour

// adminUserKey is the Locals key the session middleware stores the
// authenticated username under.
const adminUserKey = "admin_user"

// SessionManager issues and validates stateless admin session tokens.
// A token is username|expiry|HMAC(secret, username|expiry); no server-side
// session store is kept.
type SessionManager struct {
	secret string
	now    func() time.Time
}

func NewSessionManager(secret string) *SessionManager {
	return &SessionManager{secret: secret, now: time.Now}
}

// Issue returns a signed session token for the username.
func (m *SessionManager) Issue(username string) string {
	expiry := m.now().Add(SessionTTL).Unix()
	payload := fmt.Sprintf("%s|%d", username, expiry)
	return payload + "|" + hash.HMACSHA256Hex(m.secret, payload)
}

// Validate returns the username for a valid, unexpired token, or "".
func (m *SessionManager) Validate(token string) string {
	parts := strings.Split(token, "|")
	if len(parts) != 3 {
		return ""
	}
	username, expiryRaw, sig := parts[0], parts[1], parts[2]

	payload := username + "|" + expiryRaw
	if !hash.SecureCompare(hash.HMACSHA256Hex(m.secret, payload), sig) {
		return ""
	}

	expiry, err := strconv.ParseInt(expiryRaw, 10, 64)
	if err != nil || m.now().Unix() >= expiry {
		return ""
	}
	return username
}

// Handler guards admin routes: requests without a valid session cookie are
// rejected with 401. Admin endpoints are session-gated, not HMAC-gated.
func (m *SessionManager) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		username := m.Validate(c.Cookies(SessionCookie))
		if username == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required")
		}
		c.Locals(adminUserKey, username)
		return c.Next()
	}
}

// AdminUser returns the authenticated admin username for this request.
func AdminUser(c fiber.Ctx) string {
	if u, ok := c.Locals(adminUserKey).(string); ok {
		return u
	}
	return "unknown"
}
