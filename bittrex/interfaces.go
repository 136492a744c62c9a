package bittrex

import (
	"context"

	"github.com/shopspring/decimal"
)

// The client's surface is split into capability interfaces so that trading
// can be swapped out (e.g. for the sim package's engine) while market data
// stays live.

// MarketData is the public, unauthenticated read surface.
type MarketData interface {
	GetMarkets(ctx context.Context) ([]Market, error)
	GetCurrencies(ctx context.Context) ([]Currency, error)
	GetTicker(ctx context.Context, market string) (*Ticker, error)
	GetMarketSummaries(ctx context.Context) ([]MarketSummary, error)
	GetMarketSummary(ctx context.Context, market string) (*MarketSummary, error)
	GetOrderBook(ctx context.Context, market string, side BookSide, depth int) (*OrderBook, error)
	GetMarketHistory(ctx context.Context, market string) ([]Trade, error)
}

// Trading covers order placement and the account's order/balance state.
type Trading interface {
	BuyLimit(ctx context.Context, market string, quantity, rate decimal.Decimal) (*AcceptedOrder, error)
	SellLimit(ctx context.Context, market string, quantity, rate decimal.Decimal) (*AcceptedOrder, error)
	CancelOrder(ctx context.Context, orderUUID string) error
	GetOpenOrders(ctx context.Context, market string) ([]OpenOrder, error)
	GetBalances(ctx context.Context) ([]Balance, error)
	GetBalance(ctx context.Context, currency string) (*Balance, error)
	GetOrder(ctx context.Context, orderUUID string) (*Order, error)
	GetOrderHistory(ctx context.Context, market string) ([]HistoricOrder, error)
}

// Funding covers moving funds in and out of the account.
type Funding interface {
	GetDepositAddress(ctx context.Context, currency string) (*DepositAddress, error)
	Withdraw(ctx context.Context, currency string, quantity decimal.Decimal, address, paymentID string) (*AcceptedWithdrawal, error)
	GetWithdrawalHistory(ctx context.Context, currency string) ([]HistoricWithdrawal, error)
	GetDepositHistory(ctx context.Context, currency string) ([]HistoricDeposit, error)
}

// Exchange is the full client surface.
type Exchange interface {
	MarketData
	Trading
	Funding
}
