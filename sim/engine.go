// Package sim is an in-memory stand-in for the exchange's trading surface.
// Market data is read live through the wrapped client; orders and balances
// are kept in a local ledger, so strategies can run without touching real
// funds. A limit order fills immediately when the market's last price has
// already crossed its limit ("marketable limit"); otherwise it rests.
//
// A resting order never fills later, even if the market crosses its limit
// after placement. Fills are decided at placement time only.
package sim

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/trexbot/gotrex/bittrex"
)

// ErrOrderNotFound is returned by cancel and lookup operations when no
// order with the given uuid exists in the engine's ledger.
var ErrOrderNotFound = errors.New("sim: order not found")

// Engine implements bittrex.Trading over an in-memory ledger while passing
// bittrex.MarketData through to the live exchange. Safe for concurrent use;
// the ledger is guarded by one mutex so a cancel cannot race a fill.
type Engine struct {
	bittrex.MarketData

	mu       sync.Mutex
	open     []*ledgerOrder
	closed   []*ledgerOrder
	balances map[string]decimal.Decimal

	log *logrus.Entry
}

var _ bittrex.Trading = (*Engine)(nil)
var _ bittrex.MarketData = (*Engine)(nil)

// New wraps the given market-data source, usually a *bittrex.Client.
func New(market bittrex.MarketData) *Engine {
	return &Engine{
		MarketData: market,
		balances:   make(map[string]decimal.Decimal),
		log:        logrus.WithField("component", "sim"),
	}
}

// BuyLimit simulates a limit buy. It fills immediately when the current
// last price is at or below rate, crediting the market's target currency.
func (e *Engine) BuyLimit(ctx context.Context, market string, quantity, rate decimal.Decimal) (*bittrex.AcceptedOrder, error) {
	return e.placeLimit(ctx, market, SideBuy, quantity, rate)
}

// SellLimit simulates a limit sell. It fills immediately when the current
// last price is at or above rate, debiting the market's target currency.
func (e *Engine) SellLimit(ctx context.Context, market string, quantity, rate decimal.Decimal) (*bittrex.AcceptedOrder, error) {
	return e.placeLimit(ctx, market, SideSell, quantity, rate)
}

func (e *Engine) placeLimit(ctx context.Context, market string, side Side, quantity, rate decimal.Decimal) (*bittrex.AcceptedOrder, error) {
	ticker, err := e.GetTicker(ctx, market)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &ledgerOrder{
		uuid:     uuid.NewString(),
		market:   market,
		side:     side,
		quantity: quantity,
		limit:    rate,
		opened:   now,
	}

	var fills bool
	if side == SideBuy {
		fills = ticker.Last.LessThanOrEqual(rate)
	} else {
		fills = ticker.Last.GreaterThanOrEqual(rate)
	}

	e.mu.Lock()
	if fills {
		order.closed = now
		e.closed = append(e.closed, order)
		e.adjustBalance(bittrex.TargetCurrency(market), side.signed(quantity))
	} else {
		e.open = append(e.open, order)
	}
	e.mu.Unlock()

	e.log.WithFields(logrus.Fields{
		"market": market,
		"side":   side.String(),
		"rate":   rate,
		"last":   ticker.Last,
		"filled": fills,
		"uuid":   order.uuid,
	}).Debug("placed simulated order")

	return &bittrex.AcceptedOrder{UUID: order.uuid}, nil
}

// adjustBalance credits (or, for a negative delta, debits) a currency.
// Caller holds e.mu.
func (e *Engine) adjustBalance(currency string, delta decimal.Decimal) {
	e.balances[currency] = e.balances[currency].Add(delta)
}

// CancelOrder removes a resting order from the ledger. Orders that already
// filled (or were never placed) report ErrOrderNotFound.
func (e *Engine) CancelOrder(_ context.Context, orderUUID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, order := range e.open {
		if order.uuid == orderUUID {
			e.open = append(e.open[:i], e.open[i+1:]...)
			return nil
		}
	}
	return errors.Wrap(ErrOrderNotFound, orderUUID)
}

// GetOpenOrders returns resting orders in placement order, restricted to
// one market when market is non-empty.
func (e *Engine) GetOpenOrders(_ context.Context, market string) ([]bittrex.OpenOrder, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	orders := make([]bittrex.OpenOrder, 0, len(e.open))
	for _, order := range e.open {
		if market != "" && order.market != market {
			continue
		}
		orders = append(orders, order.toOpenOrder())
	}
	return orders, nil
}

// GetBalances returns every currency the ledger has touched, sorted by
// currency code.
func (e *Engine) GetBalances(_ context.Context) ([]bittrex.Balance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	balances := make([]bittrex.Balance, 0, len(e.balances))
	for currency, quantity := range e.balances {
		balances = append(balances, makeBalance(currency, quantity))
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].Currency < balances[j].Currency })
	return balances, nil
}

// GetBalance returns the balance of one currency. A currency that was never
// credited reports a zero balance, not an error.
func (e *Engine) GetBalance(_ context.Context, currency string) (*bittrex.Balance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	balance := makeBalance(currency, e.balances[currency])
	return &balance, nil
}

func makeBalance(currency string, quantity decimal.Decimal) bittrex.Balance {
	return bittrex.Balance{
		Currency:  currency,
		Balance:   quantity,
		Available: quantity,
	}
}

// GetOrder looks up one order by uuid, open orders first.
func (e *Engine) GetOrder(_ context.Context, orderUUID string) (*bittrex.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, order := range e.open {
		if order.uuid == orderUUID {
			projected := order.toOrder()
			return &projected, nil
		}
	}
	for _, order := range e.closed {
		if order.uuid == orderUUID {
			projected := order.toOrder()
			return &projected, nil
		}
	}
	return nil, errors.Wrap(ErrOrderNotFound, orderUUID)
}

// GetOrderHistory returns filled orders in fill order, restricted to one
// market when market is non-empty. Each entry reports its closing time.
func (e *Engine) GetOrderHistory(_ context.Context, market string) ([]bittrex.HistoricOrder, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	history := make([]bittrex.HistoricOrder, 0, len(e.closed))
	for _, order := range e.closed {
		if market != "" && order.market != market {
			continue
		}
		history = append(history, order.toHistoricOrder())
	}
	return history, nil
}
