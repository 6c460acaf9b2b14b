// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package act

import (
	"crypto/sha256"
	"encoding/binary"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/pkg/errors"
)

const (
	// AddressPrefix prefix of account addresses.
	AddressPrefix = "ACT-"
	// ContractAddressPrefix prefix of contract account addresses.
	ContractAddressPrefix = "ACT-CONTRACT-"
)

// Address chain-native account identifier.
// Rendered as "ACT-" + base58(hash), or "ACT-CONTRACT-" + base58(hash) for
// contract accounts.
type Address string

// String implements the stringer interface.
func (a Address) String() string {
	return string(a)
}

// IsContract returns whether the address denotes a contract account.
func (a Address) IsContract() bool {
	return strings.HasPrefix(string(a), ContractAddressPrefix)
}

// IsZero returns whether the address is empty.
func (a Address) IsZero() bool {
	return a == ""
}

// ParseAddress validates and converts a string-presented address.
func ParseAddress(s string) (Address, error) {
	if !strings.HasPrefix(s, AddressPrefix) {
		return "", errors.New("invalid address prefix")
	}
	body := strings.TrimPrefix(strings.TrimPrefix(s, ContractAddressPrefix), AddressPrefix)
	if body == "" {
		return "", errors.New("empty address body")
	}
	if len(base58.Decode(body)) == 0 {
		return "", errors.New("invalid base58 in address")
	}
	return Address(s), nil
}

// AddressFromPubKey derives an account address from a public key.
// The address is the base58 form of the first 20 bytes of sha256(pubkey).
func AddressFromPubKey(pub []byte) Address {
	h := sha256.Sum256(pub)
	return Address(AddressPrefix + base58.Encode(h[:20]))
}

// ContractAddress derives the deterministic address of a contract created
// by deployer at the given account nonce.
func ContractAddress(deployer Address, nonce uint64) Address {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], nonce)

	h := sha256.New()
	h.Write([]byte(deployer))
	h.Write(buf[:])
	return Address(ContractAddressPrefix + base58.Encode(h.Sum(nil)[:20]))
}
