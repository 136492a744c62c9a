// papertrade runs a minimal paper-trading loop: live market data through
// the public API, order placement against the in-memory simulation engine.
// Each cycle it parks a limit buy below the market, reports the ledger, and
// cancels the resting order again.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/trexbot/gotrex/bittrex"
	"github.com/trexbot/gotrex/pkg/config"
	"github.com/trexbot/gotrex/pkg/logger"
	"github.com/trexbot/gotrex/sim"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	if err := logger.Init(cfg.Log); err != nil {
		logrus.WithError(err).Fatal("init logger")
	}
	log := logrus.WithField("component", "papertrade")

	// Credentials are optional here: the simulation engine only needs the
	// public market-data endpoints.
	client := bittrex.New(bittrex.DefaultConfig())
	if creds := config.Credentials(); creds != nil {
		client = bittrex.NewWithCredentials(bittrex.DefaultConfig(), *creds)
	}
	engine := sim.New(client)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orderSize := decimal.NewFromFloat(cfg.OrderSize)
	offset := decimal.NewFromFloat(1 - cfg.RateOffset)

	log.WithFields(logrus.Fields{
		"market":    cfg.Market,
		"orderSize": orderSize,
		"interval":  cfg.PollInterval(),
	}).Info("starting paper trading loop")

	ticker := time.NewTicker(cfg.PollInterval())
	defer ticker.Stop()

	for {
		runCycle(ctx, log, engine, cfg.Market, orderSize, offset)

		select {
		case <-ctx.Done():
			log.Info("shutting down")
			report(context.Background(), log, engine)
			return
		case <-ticker.C:
		}
	}
}

func runCycle(ctx context.Context, log *logrus.Entry, engine *sim.Engine, market string, size, offset decimal.Decimal) {
	quote, err := engine.GetTicker(ctx, market)
	if err != nil {
		log.WithError(err).Warn("ticker fetch failed, skipping cycle")
		return
	}

	// A buy at the last price fills immediately; one below it rests.
	marketable, err := engine.BuyLimit(ctx, market, size, quote.Last)
	if err != nil {
		log.WithError(err).Warn("marketable buy failed")
		return
	}
	log.WithFields(logrus.Fields{"uuid": marketable.UUID, "rate": quote.Last}).Info("filled marketable buy")

	resting, err := engine.BuyLimit(ctx, market, size, quote.Last.Mul(offset))
	if err != nil {
		log.WithError(err).Warn("resting buy failed")
		return
	}

	report(ctx, log, engine)

	if err := engine.CancelOrder(ctx, resting.UUID); err != nil {
		log.WithError(err).WithField("uuid", resting.UUID).Warn("cancel failed")
	}
}

func report(ctx context.Context, log *logrus.Entry, engine *sim.Engine) {
	open, err := engine.GetOpenOrders(ctx, "")
	if err != nil {
		log.WithError(err).Warn("open orders query failed")
		return
	}
	balances, err := engine.GetBalances(ctx)
	if err != nil {
		log.WithError(err).Warn("balances query failed")
		return
	}

	log.WithField("openOrders", len(open)).Info("ledger")
	for _, b := range balances {
		log.WithFields(logrus.Fields{"currency": b.Currency, "balance": b.Balance}).Info("balance")
	}
}
