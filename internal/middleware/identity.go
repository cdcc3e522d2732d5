package middleware

import (
	"net"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Header carrying the real client IP when the request traverses Cloudflare.
const proxyIPHeader = "CF-Connecting-IP"

// clientIPKey is the Locals key the resolver stores the identity under.
const clientIPKey = "client_ip"

// IdentityResolver extracts the client IP for every request. The proxy
// header is honored only when the transport peer falls inside one of the
// trusted CIDRs; otherwise the peer address is used as-is, so a direct
// caller cannot spoof an identity by setting the header itself.
type IdentityResolver struct {
	trusted []*net.IPNet
}

// NewIdentityResolver parses a comma-separated CIDR list. Invalid entries
// are skipped. An empty list means the proxy header is never trusted.
func NewIdentityResolver(trustedCIDRs string) *IdentityResolver {
	r := &IdentityResolver{}
	for _, raw := range strings.Split(trustedCIDRs, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		_, cidr, err := net.ParseCIDR(raw)
		if err != nil {
			continue
		}
		r.trusted = append(r.trusted, cidr)
	}
	return r
}

// Resolve returns the client IP for a peer address and proxy header value.
func (r *IdentityResolver) Resolve(peerIP, headerIP string) string {
	if headerIP == "" || !r.isTrustedPeer(peerIP) {
		return peerIP
	}
	return headerIP
}

func (r *IdentityResolver) isTrustedPeer(peerIP string) bool {
	ip := net.ParseIP(peerIP)
	if ip == nil {
		return false
	}
	for _, cidr := range r.trusted {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

// Handler stores the resolved client IP in request Locals for downstream
// handlers. Runs early in the stack; pure extraction, no side effects.
func (r *IdentityResolver) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Locals(clientIPKey, r.Resolve(c.IP(), c.Get(proxyIPHeader)))
		return c.Next()
	}
}

// ClientIP returns the identity resolved for this request, falling back to
// the transport peer if the resolver middleware did not run.
func ClientIP(c fiber.Ctx) string {
	if ip, ok := c.Locals(clientIPKey).(string); ok && ip != "" {
		return ip
	}
	return c.IP()
}
