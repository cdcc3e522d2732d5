package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MaxJudgeNameLen   = 200  // judges.name VARCHAR(200)
	MaxPositionLen    = 200  // judges.position VARCHAR(200)
	MaxRulingLen      = 2000 // judges.ruling TEXT, capped at the API edge
	MaxLinkLen        = 500  // judges.link VARCHAR(500)
	MaxFingerprintLen = 64   // votes.fingerprint VARCHAR(64)
	MaxSubmitterIPLen = 45   // submissions.submitted_by_ip VARCHAR(45), fits IPv6
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// ValidateJudgeID checks that a route parameter is a positive integer ID.
func ValidateJudgeID(raw string) (int, string) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, "Judge not found"
	}
	return id, ""
}

// ValidateJudgeName checks the required judge name field.
func ValidateJudgeName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "Judge name is required"
	}
	if len(name) > MaxJudgeNameLen {
		return "", "Judge name must be at most 200 characters"
	}
	return name, ""
}

// ValidatePosition trims and bounds the optional position field.
func ValidatePosition(position string) (string, string) {
	position = strings.TrimSpace(position)
	if len(position) > MaxPositionLen {
		return "", "Position must be at most 200 characters"
	}
	return position, ""
}

// ValidateRuling trims and bounds the optional ruling description.
func ValidateRuling(ruling string) (string, string) {
	ruling = strings.TrimSpace(ruling)
	if len(ruling) > MaxRulingLen {
		return "", "Ruling must be at most 2000 characters"
	}
	return ruling, ""
}

// ValidateLink checks an optional URL field. Empty is allowed; present
// values must be http or https and within DB limits.
func ValidateLink(link string) (string, string) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", ""
	}
	if len(link) > MaxLinkLen {
		return "", "Link must be at most 500 characters"
	}
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		return "", "Link must be an http or https URL"
	}
	return link, ""
}

// ValidateFingerprint trims and truncates a browser fingerprint to DB limits.
func ValidateFingerprint(fp string) string {
	fp = strings.TrimSpace(fp)
	if len(fp) > MaxFingerprintLen {
		fp = fp[:MaxFingerprintLen]
	}
	return fp
}
