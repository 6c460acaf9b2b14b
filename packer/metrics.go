// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package packer

import "github.com/actchain/go-act/metrics"

var metricPackedTxCounter = metrics.LazyLoad(func() metrics.CountMeter {
	return metrics.Counter("packer_packed_tx_count")
})
