// Package note computes the wallet-side values of a shielded note with the
// MiMC hash over the BN254 scalar field: the commitment hash sent on mint,
// the nullifier revealed on spend and the opaque proof token.
package note

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// SecretSize is the length of the random note secret and rho.
const SecretSize = 32

// UnitsPerCoin fixes the precision at which amounts are committed.
const UnitsPerCoin = 100_000_000

var ErrInvalidAmount = errors.New("amount must be a positive number")

var (
	tagCommitment = element([]byte("shadowvault/commitment"))
	tagNullifier  = element([]byte("shadowvault/nullifier"))
	tagProof      = element([]byte("shadowvault/proof"))
)

// Note is the private opening of a commitment. Only the wallet stores it.
type Note struct {
	Secret []byte  `json:"secret"`
	Rho    []byte  `json:"rho"`
	Amount float64 `json:"amount"`
}

// New draws a fresh secret and rho for amount.
func New(amount float64) (*Note, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, ErrInvalidAmount
	}

	n := &Note{
		Secret: make([]byte, SecretSize),
		Rho:    make([]byte, SecretSize),
		Amount: amount,
	}
	if _, err := rand.Read(n.Secret); err != nil {
		return nil, err
	}
	if _, err := rand.Read(n.Rho); err != nil {
		return nil, err
	}
	return n, nil
}

// Commitment is MiMC(tag, secret, rho, amount in units), hex encoded.
func (n *Note) Commitment() string {
	return hash(tagCommitment, element(n.Secret), element(n.Rho), units(n.Amount))
}

// Nullifier binds the note's rho to the wallet key, so only the key holder
// can produce it and it is the same every time the note is spent.
func (n *Note) Nullifier(walletKey []byte) string {
	return hash(tagNullifier, element(walletKey), element(n.Rho))
}

// ProofToken is the opaque, non-empty proof attached to a spend. It commits
// to the nullifier, the commitment hash and the commitment id.
func ProofToken(nullifier, commitmentHash, commitmentID string) string {
	return hash(tagProof, element([]byte(nullifier)), element([]byte(commitmentHash)), element([]byte(commitmentID)))
}

func units(amount float64) []byte {
	var e fr.Element
	e.SetUint64(uint64(math.Round(amount * UnitsPerCoin)))
	b := e.Bytes()
	return b[:]
}

// element maps arbitrary bytes to the canonical encoding of a field element.
func element(b []byte) []byte {
	d := sha256.Sum256(b)
	var e fr.Element
	e.SetBytes(d[:])
	out := e.Bytes()
	return out[:]
}

func hash(parts ...[]byte) string {
	h := mimc.NewMiMC()
	for _, p := range parts {
		// every part is a canonical 32-byte element, so Write cannot fail
		_, _ = h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}
