package hash

import "testing"

func TestSHA256Hex_KnownValue(t *testing.T) {
	// sha256("") is a well-known constant
	got := SHA256Hex("")
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got != want {
		t.Errorf("SHA256Hex(\"\") = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Deterministic(t *testing.T) {
	a := SHA256Hex("nonce:12345")
	b := SHA256Hex("nonce:12345")
	if a != b {
		t.Error("same input should produce same hash")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64", len(a))
	}
}

func TestHMACSHA256Hex_DiffersBySecret(t *testing.T) {
	m := "POST/vote/11700000000"
	if HMACSHA256Hex("secret-a", m) == HMACSHA256Hex("secret-b", m) {
		t.Error("different secrets should produce different signatures")
	}
}

func TestHMACSHA256Hex_DiffersByMessage(t *testing.T) {
	if HMACSHA256Hex("s", "message-a") == HMACSHA256Hex("s", "message-b") {
		t.Error("different messages should produce different signatures")
	}
}

func TestSecureCompare(t *testing.T) {
	sig := HMACSHA256Hex("s", "m")
	if !SecureCompare(sig, sig) {
		t.Error("equal digests should compare equal")
	}
	if SecureCompare(sig, sig[:len(sig)-1]+"x") {
		t.Error("tampered digest should not compare equal")
	}
}

func TestLeadingHexZeros(t *testing.T) {
	tests := []struct {
		digest string
		want   int
	}{
		{"abc123", 0},
		{"0abc12", 1},
		{"0000ab", 4},
		{"000000", 6},
		{"", 0},
	}
	for _, tt := range tests {
		if got := LeadingHexZeros(tt.digest); got != tt.want {
			t.Errorf("LeadingHexZeros(%q) = %d, want %d", tt.digest, got, tt.want)
		}
	}
}
