package middleware

import (
	"strings"
	"testing"
	"time"
)

func TestSessionIssueValidate(t *testing.T) {
	m := NewSessionManager("test-secret")
	token := m.Issue("admin")

	if got := m.Validate(token); got != "admin" {
		t.Fatalf("Validate() = %q, want admin", got)
	}
}

func TestSessionRejectsTampering(t *testing.T) {
	m := NewSessionManager("test-secret")
	token := m.Issue("admin")

	tampered := strings.Replace(token, "admin", "other", 1)
	if got := m.Validate(tampered); got != "" {
		t.Fatalf("Validate(tampered) = %q, want empty", got)
	}
}

func TestSessionRejectsWrongSecret(t *testing.T) {
	issued := NewSessionManager("secret-a").Issue("admin")

	if got := NewSessionManager("secret-b").Validate(issued); got != "" {
		t.Fatalf("Validate() with wrong secret = %q, want empty", got)
	}
}

func TestSessionRejectsExpired(t *testing.T) {
	m := NewSessionManager("test-secret")
	m.now = func() time.Time { return time.Now().Add(-2 * SessionTTL) }
	token := m.Issue("admin")

	m.now = time.Now
	if got := m.Validate(token); got != "" {
		t.Fatalf("Validate(expired) = %q, want empty", got)
	}
}

func TestSessionRejectsMalformed(t *testing.T) {
	m := NewSessionManager("test-secret")

	for _, token := range []string{"", "admin", "admin|123", "a|b|c|d"} {
		if got := m.Validate(token); got != "" {
			t.Fatalf("Validate(%q) = %q, want empty", token, got)
		}
	}
}
