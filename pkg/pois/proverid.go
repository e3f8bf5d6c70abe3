package pois

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/sha3"
)

// ProverIDFromPublicKey derives a prover identity from a secp256k1 public
// key: the hex SHA3-256 digest of its compressed encoding.
func ProverIDFromPublicKey(pub *btcec.PublicKey) (ProverID, error) {
	if pub == nil {
		return "", wrapError("ProverIDFromPublicKey", fmt.Errorf("%w: nil public key", ErrInvalidParameter))
	}
	sum := sha3.Sum256(pub.SerializeCompressed())
	return ProverID(hex.EncodeToString(sum[:])), nil
}

// ParseProverKey parses a hex-encoded secp256k1 public key, compressed or
// uncompressed, and derives its prover identity.
func ParseProverKey(s string) (ProverID, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return "", wrapError("ParseProverKey", fmt.Errorf("%w: %v", ErrInvalidParameter, err))
	}
	pub, err := btcec.ParsePubKey(raw)
	if err != nil {
		return "", wrapError("ParseProverKey", fmt.Errorf("%w: %v", ErrInvalidParameter, err))
	}
	return ProverIDFromPublicKey(pub)
}

// NewProverKey generates a secp256k1 key pair for a prover.
func NewProverKey() (*btcec.PrivateKey, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, wrapError("NewProverKey", err)
	}
	return priv, nil
}
