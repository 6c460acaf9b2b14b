// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelDBMem(t *testing.T) {
	db, err := NewMem()
	assert.Nil(t, err)
	defer db.Close()

	_, err = db.Get([]byte("k"))
	assert.True(t, db.IsNotFound(err))

	has, err := db.Has([]byte("k"))
	assert.Nil(t, err)
	assert.False(t, has)

	assert.Nil(t, db.Put([]byte("k"), []byte("v")))

	v, err := db.Get([]byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v"), v)

	has, err = db.Has([]byte("k"))
	assert.Nil(t, err)
	assert.True(t, has)

	assert.Nil(t, db.Delete([]byte("k")))
	_, err = db.Get([]byte("k"))
	assert.True(t, db.IsNotFound(err))
}

func TestBucket(t *testing.T) {
	db, _ := NewMem()
	defer db.Close()

	accounts := Bucket("account_").NewGetPutter(db)
	codes := Bucket("contract_code_").NewGetPutter(db)

	assert.Nil(t, accounts.Put([]byte("alice"), []byte("1")))
	assert.Nil(t, codes.Put([]byte("alice"), []byte("2")))

	v, err := accounts.Get([]byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("1"), v)

	v, err = codes.Get([]byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("2"), v)

	// buckets are plain key prefixes on the shared store
	v, err = db.Get([]byte("account_alice"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("1"), v)

	_, err = accounts.Get([]byte("bob"))
	assert.True(t, accounts.IsNotFound(err))

	assert.Nil(t, accounts.Delete([]byte("alice")))
	has, _ := db.Has([]byte("account_alice"))
	assert.False(t, has)
	has, _ = db.Has([]byte("contract_code_alice"))
	assert.True(t, has)
}
