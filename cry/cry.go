// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cry provides the signature capability of the chain.
// Transactions and votes are signed over a 32-byte digest; the scheme is
// ed25519 and is opaque to the rest of the system.
package cry

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/pkg/errors"

	"github.com/actchain/go-act/act"
)

// Signable interface of signable object.
type Signable interface {
	SigningHash() act.Hash
	Signature() []byte
}

// KeyPair holds a signing key and its derived chain address.
type KeyPair struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
	addr act.Address
}

// GenerateKeyPair creates a fresh random key pair.
func GenerateKeyPair() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "generate key pair")
	}
	return &KeyPair{priv: priv, pub: pub, addr: act.AddressFromPubKey(pub)}, nil
}

// NewKeyPairFromSeed derives a key pair deterministically from a 32-byte
// seed. Used for devnet accounts and tests.
func NewKeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Errorf("seed must be %d bytes", ed25519.SeedSize)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	return &KeyPair{priv: priv, pub: pub, addr: act.AddressFromPubKey(pub)}, nil
}

// Address returns the chain address derived from the public key.
func (kp *KeyPair) Address() act.Address {
	return kp.addr
}

// PublicKey returns the raw public key bytes.
func (kp *KeyPair) PublicKey() []byte {
	return append([]byte(nil), kp.pub...)
}

// Sign signs the given digest.
func (kp *KeyPair) Sign(msgHash act.Hash) []byte {
	return ed25519.Sign(kp.priv, msgHash.Bytes())
}

// Sign signs target with the key pair and returns the signature.
func Sign(target Signable, kp *KeyPair) []byte {
	return kp.Sign(target.SigningHash())
}

// Verify reports whether sig is a valid signature of msgHash by pub.
// Malformed keys or signatures simply verify false.
func Verify(pub []byte, msgHash act.Hash, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msgHash.Bytes(), sig)
}
