// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoesWait(t *testing.T) {
	var goes Goes
	var ran int32

	for i := 0; i < 8; i++ {
		goes.Go(func() { atomic.AddInt32(&ran, 1) })
	}
	goes.Wait()
	assert.Equal(t, int32(8), atomic.LoadInt32(&ran))
}

func TestGoesDone(t *testing.T) {
	var goes Goes
	goes.Go(func() { time.Sleep(10 * time.Millisecond) })

	select {
	case <-goes.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Done channel never closed")
	}
}
