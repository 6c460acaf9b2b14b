// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package act

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// HashLength length of hash in bytes.
const HashLength = 32

// Hash sha256 digest.
// Its string form (plain hex, no 0x) is the identity of transactions,
// receipts and blocks everywhere in the system.
type Hash [HashLength]byte

var (
	_ json.Marshaler   = (*Hash)(nil)
	_ json.Unmarshaler = (*Hash)(nil)
)

// String implements stringer. Plain lower-case hex.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// AbbrevString returns abbrev string presentation.
func (h Hash) AbbrevString() string {
	return fmt.Sprintf("%x…%x", h[:4], h[28:])
}

// Bytes returns byte slice form of hash.
func (h Hash) Bytes() []byte {
	return h[:]
}

// IsZero returns if hash has all zero bytes.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// MarshalJSON implements json.Marshaler.
func (h *Hash) MarshalJSON() ([]byte, error) {
	if h == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(h.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseHash(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHash converts a hex-presented string (with or without 0x prefix)
// into a Hash.
func ParseHash(s string) (Hash, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if len(s) != HashLength*2 {
		return Hash{}, errors.New("invalid hash length")
	}
	var h Hash
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return Hash{}, err
	}
	return h, nil
}

// BytesToHash converts a byte slice into a Hash.
// If b is larger than hash length, b will be cropped from the left.
// If b is smaller, b will be extended from the left.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// HashSum computes the sha256 digest over the concatenation of data.
func HashSum(data ...[]byte) (h Hash) {
	hw := sha256.New()
	for _, b := range data {
		hw.Write(b)
	}
	hw.Sum(h[:0])
	return
}
