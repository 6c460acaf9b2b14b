// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package txpool

import "github.com/actchain/go-act/metrics"

var (
	metricPoolGauge = metrics.LazyLoad(func() metrics.GaugeMeter {
		return metrics.Gauge("txpool_size_count")
	})
	metricBadTxCounter = metrics.LazyLoad(func() metrics.CountVecMeter {
		return metrics.CounterVec("txpool_rejected_count", []string{"reason"})
	})
)
