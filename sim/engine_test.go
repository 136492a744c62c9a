package sim

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMarket = "BTC-LTC"

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func TestBuyLimitFillsWhenMarketable(t *testing.T) {
	market := newMockMarketData(100)
	engine := New(market)
	ctx := context.Background()

	accepted, err := engine.BuyLimit(ctx, testMarket, d(2), d(100))
	require.NoError(t, err)
	require.NotEmpty(t, accepted.UUID)
	assert.Equal(t, 1, market.Calls["GetTicker"])

	// Filled: target currency credited, order in history, not in open set.
	balance, err := engine.GetBalance(ctx, "LTC")
	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(d(2)), "got %s", balance.Balance)

	open, err := engine.GetOpenOrders(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, open)

	history, err := engine.GetOrderHistory(ctx, "")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, accepted.UUID, history[0].OrderUUID)
	assert.Equal(t, "LIMIT_BUY", history[0].OrderType)
	assert.False(t, history[0].TimeStamp.IsZero(), "history must carry the closing time")
}

func TestBuyLimitRestsBelowMarket(t *testing.T) {
	engine := New(newMockMarketData(100))
	ctx := context.Background()

	accepted, err := engine.BuyLimit(ctx, testMarket, d(2), d(50))
	require.NoError(t, err)

	open, err := engine.GetOpenOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, accepted.UUID, open[0].OrderUUID)

	// No balance moves until an order fills.
	balance, err := engine.GetBalance(ctx, "LTC")
	require.NoError(t, err)
	assert.True(t, balance.Balance.IsZero())

	history, err := engine.GetOrderHistory(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSellLimitFillsWhenMarketable(t *testing.T) {
	engine := New(newMockMarketData(100))
	ctx := context.Background()

	_, err := engine.BuyLimit(ctx, testMarket, d(2), d(100))
	require.NoError(t, err)

	_, err = engine.SellLimit(ctx, testMarket, d(2), d(90))
	require.NoError(t, err)

	balance, err := engine.GetBalance(ctx, "LTC")
	require.NoError(t, err)
	assert.True(t, balance.Balance.IsZero(), "sell fill must debit the credit back, got %s", balance.Balance)

	history, err := engine.GetOrderHistory(ctx, "")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestSellLimitRestsAboveMarket(t *testing.T) {
	engine := New(newMockMarketData(100))
	ctx := context.Background()

	_, err := engine.SellLimit(ctx, testMarket, d(1), d(150))
	require.NoError(t, err)

	open, err := engine.GetOpenOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "LIMIT_SELL", open[0].OrderType)
	// Projected sells keep the exchange's sign convention.
	assert.True(t, open[0].Quantity.Equal(d(-1)), "got %s", open[0].Quantity)

	balance, err := engine.GetBalance(ctx, "LTC")
	require.NoError(t, err)
	assert.True(t, balance.Balance.IsZero())
}

func TestCancelOrder(t *testing.T) {
	engine := New(newMockMarketData(100))
	ctx := context.Background()

	accepted, err := engine.BuyLimit(ctx, testMarket, d(1), d(50))
	require.NoError(t, err)

	require.NoError(t, engine.CancelOrder(ctx, accepted.UUID))

	open, err := engine.GetOpenOrders(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, open)

	// Second cancel, unknown id, and a filled order all report not found.
	assert.ErrorIs(t, engine.CancelOrder(ctx, accepted.UUID), ErrOrderNotFound)
	assert.ErrorIs(t, engine.CancelOrder(ctx, "no-such-order"), ErrOrderNotFound)

	filled, err := engine.BuyLimit(ctx, testMarket, d(1), d(100))
	require.NoError(t, err)
	assert.ErrorIs(t, engine.CancelOrder(ctx, filled.UUID), ErrOrderNotFound)
}

func TestOpenOrdersFilterAndOrdering(t *testing.T) {
	engine := New(newMockMarketData(100))
	ctx := context.Background()

	first, err := engine.BuyLimit(ctx, testMarket, d(1), d(10))
	require.NoError(t, err)
	second, err := engine.BuyLimit(ctx, "BTC-XMR", d(1), d(10))
	require.NoError(t, err)
	third, err := engine.BuyLimit(ctx, testMarket, d(1), d(20))
	require.NoError(t, err)

	all, err := engine.GetOpenOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{first.UUID, second.UUID, third.UUID},
		[]string{all[0].OrderUUID, all[1].OrderUUID, all[2].OrderUUID},
		"open orders must come back in placement order")

	ltc, err := engine.GetOpenOrders(ctx, testMarket)
	require.NoError(t, err)
	require.Len(t, ltc, 2)
	assert.Equal(t, first.UUID, ltc[0].OrderUUID)
	assert.Equal(t, third.UUID, ltc[1].OrderUUID)
}

func TestGetBalanceNeverCreditedIsZero(t *testing.T) {
	engine := New(newMockMarketData(100))

	balance, err := engine.GetBalance(context.Background(), "DOGE")
	require.NoError(t, err)
	assert.Equal(t, "DOGE", balance.Currency)
	assert.True(t, balance.Balance.IsZero())
}

func TestGetBalancesListsTouchedCurrencies(t *testing.T) {
	engine := New(newMockMarketData(100))
	ctx := context.Background()

	_, err := engine.BuyLimit(ctx, "BTC-XMR", d(3), d(100))
	require.NoError(t, err)
	_, err = engine.BuyLimit(ctx, "BTC-LTC", d(1), d(100))
	require.NoError(t, err)

	balances, err := engine.GetBalances(ctx)
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, "LTC", balances[0].Currency)
	assert.Equal(t, "XMR", balances[1].Currency)
	assert.True(t, balances[1].Balance.Equal(d(3)))
}

func TestGetOrderLooksUpBothSets(t *testing.T) {
	engine := New(newMockMarketData(100))
	ctx := context.Background()

	resting, err := engine.BuyLimit(ctx, testMarket, d(1), d(50))
	require.NoError(t, err)
	filled, err := engine.BuyLimit(ctx, testMarket, d(1), d(100))
	require.NoError(t, err)

	order, err := engine.GetOrder(ctx, resting.UUID)
	require.NoError(t, err)
	assert.True(t, order.IsOpen)
	assert.Nil(t, order.Closed)

	order, err = engine.GetOrder(ctx, filled.UUID)
	require.NoError(t, err)
	assert.False(t, order.IsOpen)
	require.NotNil(t, order.Closed)

	_, err = engine.GetOrder(ctx, "no-such-order")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderHistoryFilterByMarket(t *testing.T) {
	engine := New(newMockMarketData(100))
	ctx := context.Background()

	_, err := engine.BuyLimit(ctx, testMarket, d(1), d(100))
	require.NoError(t, err)
	_, err = engine.BuyLimit(ctx, "BTC-XMR", d(1), d(100))
	require.NoError(t, err)

	history, err := engine.GetOrderHistory(ctx, testMarket)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, testMarket, history[0].Exchange)
}

func TestTickerFailurePropagates(t *testing.T) {
	market := newMockMarketData(100)
	tickerErr := errors.New("ticker unavailable")
	market.ErrorOnNext["GetTicker"] = tickerErr

	engine := New(market)
	_, err := engine.BuyLimit(context.Background(), testMarket, d(1), d(100))
	assert.ErrorIs(t, err, tickerErr)

	// Nothing may be recorded for a failed placement.
	open, err := engine.GetOpenOrders(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestRestingOrderNeverFillsLater(t *testing.T) {
	market := newMockMarketData(100)
	engine := New(market)
	ctx := context.Background()

	accepted, err := engine.BuyLimit(ctx, testMarket, d(1), d(50))
	require.NoError(t, err)

	// Market drops through the limit; the resting order must not close.
	market.mu.Lock()
	market.LastPrice = d(40)
	market.mu.Unlock()

	open, err := engine.GetOpenOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, accepted.UUID, open[0].OrderUUID)

	history, err := engine.GetOrderHistory(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestConcurrentPlacementsAndCancels(t *testing.T) {
	engine := New(newMockMarketData(100))
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// One resting order canceled, one resting kept, one fill.
			canceled, err := engine.BuyLimit(ctx, testMarket, d(1), d(10))
			require.NoError(t, err)
			_, err = engine.BuyLimit(ctx, testMarket, d(1), d(20))
			require.NoError(t, err)
			_, err = engine.BuyLimit(ctx, testMarket, d(1), d(200))
			require.NoError(t, err)
			require.NoError(t, engine.CancelOrder(ctx, canceled.UUID))
		}()
	}
	wg.Wait()

	open, err := engine.GetOpenOrders(ctx, "")
	require.NoError(t, err)
	assert.Len(t, open, workers)

	history, err := engine.GetOrderHistory(ctx, "")
	require.NoError(t, err)
	assert.Len(t, history, workers)

	balance, err := engine.GetBalance(ctx, "LTC")
	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(d(workers)), "got %s", balance.Balance)
}
