package sim

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/trexbot/gotrex/bittrex"
)

// mockMarketData is an in-memory bittrex.MarketData with call tracking and
// one-shot error injection.
type mockMarketData struct {
	mu sync.Mutex

	// Response data
	LastPrice decimal.Decimal

	// Call tracking
	Calls map[string]int

	// Error injection
	ErrorOnNext map[string]error
}

func newMockMarketData(lastPrice float64) *mockMarketData {
	return &mockMarketData{
		LastPrice:   decimal.NewFromFloat(lastPrice),
		Calls:       make(map[string]int),
		ErrorOnNext: make(map[string]error),
	}
}

func (m *mockMarketData) trackCall(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls[name]++
	if err, ok := m.ErrorOnNext[name]; ok {
		delete(m.ErrorOnNext, name)
		return err
	}
	return nil
}

func (m *mockMarketData) GetTicker(_ context.Context, market string) (*bittrex.Ticker, error) {
	if err := m.trackCall("GetTicker"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return &bittrex.Ticker{
		Bid:        m.LastPrice,
		Ask:        m.LastPrice,
		Last:       m.LastPrice,
		MarketName: market,
	}, nil
}

func (m *mockMarketData) GetMarkets(context.Context) ([]bittrex.Market, error) {
	return nil, m.trackCall("GetMarkets")
}

func (m *mockMarketData) GetCurrencies(context.Context) ([]bittrex.Currency, error) {
	return nil, m.trackCall("GetCurrencies")
}

func (m *mockMarketData) GetMarketSummaries(context.Context) ([]bittrex.MarketSummary, error) {
	return nil, m.trackCall("GetMarketSummaries")
}

func (m *mockMarketData) GetMarketSummary(_ context.Context, market string) (*bittrex.MarketSummary, error) {
	if err := m.trackCall("GetMarketSummary"); err != nil {
		return nil, err
	}
	return &bittrex.MarketSummary{MarketName: market, Last: m.LastPrice}, nil
}

func (m *mockMarketData) GetOrderBook(context.Context, string, bittrex.BookSide, int) (*bittrex.OrderBook, error) {
	if err := m.trackCall("GetOrderBook"); err != nil {
		return nil, err
	}
	return &bittrex.OrderBook{}, nil
}

func (m *mockMarketData) GetMarketHistory(context.Context, string) ([]bittrex.Trade, error) {
	return nil, m.trackCall("GetMarketHistory")
}
