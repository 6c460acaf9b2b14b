// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common/mclock"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/actchain/go-act/consensus"
	"github.com/actchain/go-act/genesis"
	"github.com/actchain/go-act/kv"
	"github.com/actchain/go-act/log"
	"github.com/actchain/go-act/metrics"
	"github.com/actchain/go-act/node"
	"github.com/actchain/go-act/state"
	"github.com/actchain/go-act/txpool"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "actd",
		Usage:     "Node of the ACT Chain network",
		Copyright: "2025 The ACTChain developers",
		Flags: []cli.Flag{
			dataDirFlag,
			genesisFlag,
			poolLimitFlag,
			blockIntervalFlag,
			minValidatorsFlag,
			soloFlag,
			metricsAddrFlag,
			verbosityFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)

	if addr := ctx.String(metricsAddrFlag.Name); addr != "" {
		startMetricsServer(addr)
	}

	db, err := openMainDB(ctx)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); db.Close() }()

	stater := state.New(db, &mclock.System{})

	config := consensus.DefaultConfig()
	config.BlockInterval = ctx.Duration(blockIntervalFlag.Name)
	config.MinValidators = ctx.Int(minValidatorsFlag.Name)
	engine := consensus.NewWithConfig(config)

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	if err := gene.Build(stater, engine); err != nil {
		return errors.Wrap(err, "build genesis")
	}

	pool := txpool.New(stater, txpool.Options{Limit: ctx.Int(poolLimitFlag.Name)})
	defer func() { logger.Info("closing tx pool..."); pool.Close() }()

	printStartupMessage(ctx, engine)

	return node.New(pool, stater, engine, node.Options{
		SoloVoting: ctx.Bool(soloFlag.Name),
	}).Run(handleExitSignal())
}

func initLogger(ctx *cli.Context) {
	lvl := log.LevelInfo
	switch ctx.Int(verbosityFlag.Name) {
	case 0, 1:
		lvl = log.LevelError
	case 2:
		lvl = log.LevelWarn
	case 3:
		lvl = log.LevelInfo
	case 4:
		lvl = log.LevelDebug
	default:
		lvl = log.LevelTrace
	}
	log.SetDefault(log.NewTerminalHandler(lvl))
}

func openMainDB(ctx *cli.Context) (*kv.LevelDB, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		logger.Info("no data dir given, using in-memory database")
		return kv.NewMem()
	}
	return kv.New(dataDir, kv.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: 512,
	})
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	if path := ctx.String(genesisFlag.Name); path != "" {
		return genesis.Load(path)
	}
	logger.Info("no genesis file given, using devnet allocation")
	return genesis.NewDevnet(), nil
}

func startMetricsServer(addr string) {
	metrics.InitializePrometheusMetrics()
	srv := http.Server{
		Addr:              addr,
		Handler:           metrics.HTTPHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server stopped", "err", err)
		}
	}()
	logger.Info("metrics server started", "addr", addr)
}

func printStartupMessage(ctx *cli.Context, engine *consensus.Engine) {
	status := engine.GetStatus()
	active := 0
	for _, v := range status.Validators {
		if v.Active {
			active++
		}
	}
	fmt.Printf(`Starting %v
    Validators  [ %v active / %v total ]
    Interval    [ %v ]
    Solo voting [ %v ]
`,
		ctx.App.Name,
		active,
		len(status.Validators),
		ctx.Duration(blockIntervalFlag.Name),
		ctx.Bool(soloFlag.Name),
	)
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}
