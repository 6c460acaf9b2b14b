// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cache provides short-lived read caches.
package cache

import (
	"time"

	"github.com/ethereum/go-ethereum/common/mclock"
	lru "github.com/hashicorp/golang-lru"
)

type entry struct {
	value     interface{}
	expiresAt mclock.AbsTime
}

// TTL a bounded cache whose entries expire after a fixed duration.
// Expiry is judged against the injected clock so tests can use
// mclock.Simulated without real delays.
type TTL struct {
	backing *lru.Cache
	ttl     time.Duration
	clock   mclock.Clock
}

// NewTTL creates a TTL cache holding at most maxSize entries.
// maxSize should be > 0, or an error returned.
func NewTTL(maxSize int, ttl time.Duration, clock mclock.Clock) (*TTL, error) {
	backing, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &TTL{backing, ttl, clock}, nil
}

// Get returns the live value for key, or false if absent or expired.
// Expired entries are evicted on the spot.
func (c *TTL) Get(key interface{}) (interface{}, bool) {
	v, ok := c.backing.Get(key)
	if !ok {
		return nil, false
	}
	ent := v.(*entry)
	if c.clock.Now() > ent.expiresAt {
		c.backing.Remove(key)
		return nil, false
	}
	return ent.value, true
}

// Set stores the value for key with a fresh expiry.
func (c *TTL) Set(key, value interface{}) {
	c.backing.Add(key, &entry{value, c.clock.Now().Add(c.ttl)})
}

// Remove invalidates the entry for key, if any.
func (c *TTL) Remove(key interface{}) {
	c.backing.Remove(key)
}

// Len returns the number of resident entries, expired ones included.
func (c *TTL) Len() int {
	return c.backing.Len()
}
