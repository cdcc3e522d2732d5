package pow

import (
	"fmt"

	"github.com/mikl0s/JAI/pkg/hash"
)

// DefaultDifficulty is the number of leading zero hex digits required on
// both the vote and submission endpoints.
const DefaultDifficulty = 4

// Proof is a client-supplied proof-of-work solution.
type Proof struct {
	Nonce string `json:"nonce"`
	Hash  string `json:"hash"`
}

// Verify checks a proof-of-work solution. The canonical message is the
// literal string "nonce:" + nonce; its SHA256 hex digest must match the
// claimed hash and carry at least difficulty leading '0' characters.
// Stateless: no server-side retry state is kept.
func Verify(nonce, claimedHash string, difficulty int) bool {
	calculated := hash.SHA256Hex(fmt.Sprintf("nonce:%s", nonce))
	if calculated != claimedHash {
		return false
	}
	return hash.LeadingHexZeros(calculated) >= difficulty
}

// VerifyProof is a convenience wrapper over Verify for a Proof value.
func VerifyProof(p Proof, difficulty int) bool {
	return Verify(p.Nonce, p.Hash, difficulty)
}
