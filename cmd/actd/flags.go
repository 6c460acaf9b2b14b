// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"time"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Usage: "directory for the chain database (in-memory when empty)",
	}
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a genesis YAML file (devnet allocation when empty)",
	}
	poolLimitFlag = cli.IntFlag{
		Name:  "pool-limit",
		Value: 10000,
		Usage: "max transactions held by the pool",
	}
	blockIntervalFlag = cli.DurationFlag{
		Name:  "block-interval",
		Value: 30 * time.Second,
		Usage: "time between consecutive blocks",
	}
	minValidatorsFlag = cli.IntFlag{
		Name:  "min-validators",
		Value: 3,
		Usage: "minimum count of active validators",
	}
	soloFlag = cli.BoolFlag{
		Name:  "solo",
		Usage: "vote on behalf of all local validators (single-node network)",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "prometheus endpoint listening address (disabled when empty)",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
)
