package pow

import (
	"fmt"
	"testing"

	"github.com/mikl0s/JAI/pkg/hash"
)

func solve(t *testing.T, difficulty int) (string, string) {
	t.Helper()
	for i := 0; i < 1_000_000; i++ {
		nonce := fmt.Sprintf("%d", i)
		digest := hash.SHA256Hex("nonce:" + nonce)
		if hash.LeadingHexZeros(digest) >= difficulty {
			return nonce, digest
		}
	}
	t.Fatalf("could not solve difficulty %d", difficulty)
	return "", ""
}

func TestVerify_CorrectHashZeroDifficulty(t *testing.T) {
	nonce := "arbitrary-nonce"
	digest := hash.SHA256Hex("nonce:" + nonce)
	if !Verify(nonce, digest, 0) {
		t.Error("correct hash at difficulty 0 should verify")
	}
}

func TestVerify_WrongHash(t *testing.T) {
	if Verify("arbitrary-nonce", "deadbeef", 0) {
		t.Error("wrong hash should not verify even at difficulty 0")
	}
}

func TestVerify_HashOfWrongMessage(t *testing.T) {
	// Digest of the bare nonce, without the "nonce:" prefix
	nonce := "12345"
	digest := hash.SHA256Hex(nonce)
	if Verify(nonce, digest, 0) {
		t.Error("digest must be over the canonical \"nonce:\" message")
	}
}

func TestVerify_MeetsDifficulty(t *testing.T) {
	nonce, digest := solve(t, 2)
	if !Verify(nonce, digest, 2) {
		t.Errorf("solved proof (nonce=%s) should verify at difficulty 2", nonce)
	}
}

func TestVerify_DifficultyAboveActualZeros(t *testing.T) {
	nonce := "arbitrary-nonce"
	digest := hash.SHA256Hex("nonce:" + nonce)
	actual := hash.LeadingHexZeros(digest)
	if Verify(nonce, digest, actual+1) {
		t.Error("raising difficulty beyond the digest's leading zeros should fail")
	}
	if !Verify(nonce, digest, actual) {
		t.Error("difficulty equal to the digest's leading zeros should pass")
	}
}

func TestVerifyProof(t *testing.T) {
	nonce, digest := solve(t, 1)
	if !VerifyProof(Proof{Nonce: nonce, Hash: digest}, 1) {
		t.Error("proof value should verify")
	}
	if VerifyProof(Proof{Nonce: nonce, Hash: ""}, 0) {
		t.Error("empty hash should not verify")
	}
}
