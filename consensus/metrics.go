// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package consensus

import "github.com/actchain/go-act/metrics"

var (
	metricFinalizedGauge = metrics.LazyLoad(func() metrics.GaugeMeter {
		return metrics.Gauge("consensus_finalized_height")
	})
	metricActiveValidatorsGauge = metrics.LazyLoad(func() metrics.GaugeMeter {
		return metrics.Gauge("consensus_active_validators_count")
	})
	metricVoteCounter = metrics.LazyLoad(func() metrics.CountMeter {
		return metrics.Counter("consensus_votes_count")
	})
)
