// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package act

import (
	"crypto/sha256"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashString(t *testing.T) {
	h := HashSum([]byte("hello"))

	want := sha256.Sum256([]byte("hello"))
	assert.Equal(t, Hash(want), h)

	// identity string is plain hex without 0x
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", h.String())
	assert.Equal(t, 64, len(h.String()))
}

func TestHashSumConcat(t *testing.T) {
	// HashSum over parts equals sha256 over the concatenation
	assert.Equal(t, HashSum([]byte("foobar")), HashSum([]byte("foo"), []byte("bar")))
}

func TestParseHash(t *testing.T) {
	h := HashSum([]byte("x"))

	parsed, err := ParseHash(h.String())
	assert.Nil(t, err)
	assert.Equal(t, h, parsed)

	parsed, err = ParseHash("0x" + h.String())
	assert.Nil(t, err)
	assert.Equal(t, h, parsed)

	_, err = ParseHash("abc")
	assert.Error(t, err)

	_, err = ParseHash(h.String()[:62] + "zz")
	assert.Error(t, err)
}

func TestHashJSON(t *testing.T) {
	h := HashSum([]byte("json"))

	data, err := json.Marshal(&h)
	assert.Nil(t, err)
	assert.Equal(t, `"`+h.String()+`"`, string(data))

	var back Hash
	assert.Nil(t, json.Unmarshal(data, &back))
	assert.Equal(t, h, back)
}

func TestBytesToHash(t *testing.T) {
	assert.Equal(t, Hash{31: 1}, BytesToHash([]byte{1}))

	long := make([]byte, 40)
	long[39] = 7
	assert.Equal(t, Hash{31: 7}, BytesToHash(long))

	assert.True(t, Hash{}.IsZero())
	assert.False(t, HashSum(nil).IsZero())
}
