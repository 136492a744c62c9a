package bittrex

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Time handles the exchange's timestamp format, which carries no timezone
// suffix ("2014-07-09T07:19:30.15"). RFC3339 is accepted as well.
type Time struct {
	time.Time
}

const timeLayout = "2006-01-02T15:04:05"

func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(timeLayout, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("bittrex: cannot parse timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format("2006-01-02T15:04:05.999999999") + `"`), nil
}

// BookSide selects which side(s) of the order book to retrieve.
type BookSide string

const (
	BookSideBuy  BookSide = "buy"
	BookSideSell BookSide = "sell"
	BookSideBoth BookSide = "both"
)

// Market describes a tradable market pair, e.g. BTC-LTC.
type Market struct {
	MarketCurrency     string          `json:"MarketCurrency"`
	BaseCurrency       string          `json:"BaseCurrency"`
	MarketCurrencyLong string          `json:"MarketCurrencyLong"`
	BaseCurrencyLong   string          `json:"BaseCurrencyLong"`
	MinTradeSize       decimal.Decimal `json:"MinTradeSize"`
	MarketName         string          `json:"MarketName"`
	IsActive           bool            `json:"IsActive"`
	Created            Time            `json:"Created"`
	Notice             string          `json:"Notice"`
	IsSponsored        *bool           `json:"IsSponsored"`
	LogoURL            string          `json:"LogoUrl"`
}

// Currency describes a currency supported by the exchange.
type Currency struct {
	Currency        string          `json:"Currency"`
	CurrencyLong    string          `json:"CurrencyLong"`
	MinConfirmation int             `json:"MinConfirmation"`
	TxFee           decimal.Decimal `json:"TxFee"`
	IsActive        bool            `json:"IsActive"`
	CoinType        string          `json:"CoinType"`
	BaseAddress     string          `json:"BaseAddress"`
	Notice          string          `json:"Notice"`
}

// Ticker carries the current bid, ask and last trade price of one market.
// MarketName is stamped by the client; the endpoint itself does not echo it.
type Ticker struct {
	Bid        decimal.Decimal `json:"Bid"`
	Ask        decimal.Decimal `json:"Ask"`
	Last       decimal.Decimal `json:"Last"`
	MarketName string          `json:"-"`
}

// MarketSummary is the last 24 hours of one market.
type MarketSummary struct {
	MarketName     string          `json:"MarketName"`
	High           decimal.Decimal `json:"High"`
	Low            decimal.Decimal `json:"Low"`
	Volume         decimal.Decimal `json:"Volume"`
	Last           decimal.Decimal `json:"Last"`
	BaseVolume     decimal.Decimal `json:"BaseVolume"`
	TimeStamp      Time            `json:"TimeStamp"`
	Bid            decimal.Decimal `json:"Bid"`
	Ask            decimal.Decimal `json:"Ask"`
	OpenBuyOrders  int             `json:"OpenBuyOrders"`
	OpenSellOrders int             `json:"OpenSellOrders"`
	PrevDay        decimal.Decimal `json:"PrevDay"`
	Created        Time            `json:"Created"`
}

// OrderBookEntry is one resting order (price level) in the book.
type OrderBookEntry struct {
	Quantity decimal.Decimal `json:"Quantity"`
	Rate     decimal.Decimal `json:"Rate"`
}

// OrderBook holds one or both sides of a market's book. When only one side
// was requested, the other side is nil.
type OrderBook struct {
	Buy        []OrderBookEntry `json:"buy"`
	Sell       []OrderBookEntry `json:"sell"`
	MarketName string           `json:"-"`
}

// Trade is one fill from a market's public trade history.
type Trade struct {
	ID        int64           `json:"Id"`
	TimeStamp Time            `json:"TimeStamp"`
	Quantity  decimal.Decimal `json:"Quantity"`
	Price     decimal.Decimal `json:"Price"`
	Total     decimal.Decimal `json:"Total"`
	FillType  string          `json:"FillType"`
	OrderType string          `json:"OrderType"`
}

// AcceptedOrder acknowledges a placed order.
type AcceptedOrder struct {
	UUID string `json:"uuid"`
}

// AcceptedWithdrawal acknowledges a requested withdrawal.
type AcceptedWithdrawal struct {
	UUID string `json:"uuid"`
}

// OpenOrder is an order resting on the exchange.
type OpenOrder struct {
	UUID              *string          `json:"Uuid"`
	OrderUUID         string           `json:"OrderUuid"`
	Exchange          string           `json:"Exchange"`
	OrderType         string           `json:"OrderType"`
	Quantity          decimal.Decimal  `json:"Quantity"`
	QuantityRemaining decimal.Decimal  `json:"QuantityRemaining"`
	Limit             decimal.Decimal  `json:"Limit"`
	CommissionPaid    decimal.Decimal  `json:"CommissionPaid"`
	Price             decimal.Decimal  `json:"Price"`
	PricePerUnit      *decimal.Decimal `json:"PricePerUnit"`
	Opened            Time             `json:"Opened"`
	Closed            *Time            `json:"Closed"`
	CancelInitiated   bool             `json:"CancelInitiated"`
	ImmediateOrCancel bool             `json:"ImmediateOrCancel"`
	IsConditional     bool             `json:"IsConditional"`
	Condition         string           `json:"Condition"`
	ConditionTarget   string           `json:"ConditionTarget"`
}

// Order is a single order looked up by uuid, open or closed.
type Order struct {
	AccountID                  *string          `json:"AccountId"`
	OrderUUID                  string           `json:"OrderUuid"`
	Exchange                   string           `json:"Exchange"`
	Type                       string           `json:"Type"`
	Quantity                   decimal.Decimal  `json:"Quantity"`
	QuantityRemaining          decimal.Decimal  `json:"QuantityRemaining"`
	Limit                      decimal.Decimal  `json:"Limit"`
	Reserved                   decimal.Decimal  `json:"Reserved"`
	ReserveRemaining           decimal.Decimal  `json:"ReserveRemaining"`
	CommissionReserved         decimal.Decimal  `json:"CommissionReserved"`
	CommissionReserveRemaining decimal.Decimal  `json:"CommissionReserveRemaining"`
	CommissionPaid             decimal.Decimal  `json:"CommissionPaid"`
	Price                      decimal.Decimal  `json:"Price"`
	PricePerUnit               *decimal.Decimal `json:"PricePerUnit"`
	Opened                     Time             `json:"Opened"`
	Closed                     *Time            `json:"Closed"`
	IsOpen                     bool             `json:"IsOpen"`
	Sentinel                   string           `json:"Sentinel"`
	CancelInitiated            bool             `json:"CancelInitiated"`
	ImmediateOrCancel          bool             `json:"ImmediateOrCancel"`
	IsConditional              bool             `json:"IsConditional"`
	Condition                  string           `json:"Condition"`
	ConditionTarget            string           `json:"ConditionTarget"`
}

// HistoricOrder is one entry of the account's order history. TimeStamp is
// the time the order closed.
type HistoricOrder struct {
	OrderUUID         string           `json:"OrderUuid"`
	Exchange          string           `json:"Exchange"`
	TimeStamp         Time             `json:"TimeStamp"`
	OrderType         string           `json:"OrderType"`
	Limit             decimal.Decimal  `json:"Limit"`
	Quantity          decimal.Decimal  `json:"Quantity"`
	QuantityRemaining decimal.Decimal  `json:"QuantityRemaining"`
	Commission        decimal.Decimal  `json:"Commission"`
	Price             decimal.Decimal  `json:"Price"`
	PricePerUnit      *decimal.Decimal `json:"PricePerUnit"`
	IsConditional     bool             `json:"IsConditional"`
	Condition         string           `json:"Condition"`
	ConditionTarget   string           `json:"ConditionTarget"`
	ImmediateOrCancel bool             `json:"ImmediateOrCancel"`
}

// Balance is the account's holding of one currency.
type Balance struct {
	Currency      string          `json:"Currency"`
	Balance       decimal.Decimal `json:"Balance"`
	Available     decimal.Decimal `json:"Available"`
	Pending       decimal.Decimal `json:"Pending"`
	CryptoAddress string          `json:"CryptoAddress"`
	Requested     bool            `json:"Requested"`
	UUID          *string         `json:"Uuid"`
}

// DepositAddress is the deposit address of one currency.
type DepositAddress struct {
	Currency string `json:"Currency"`
	Address  string `json:"Address"`
}

// HistoricWithdrawal is one entry of the account's withdrawal history.
type HistoricWithdrawal struct {
	PaymentUUID    string          `json:"PaymentUuid"`
	Currency       string          `json:"Currency"`
	Amount         decimal.Decimal `json:"Amount"`
	Address        string          `json:"Address"`
	Opened         Time            `json:"Opened"`
	Authorized     bool            `json:"Authorized"`
	PendingPayment bool            `json:"PendingPayment"`
	TxCost         decimal.Decimal `json:"TxCost"`
	TxID           string          `json:"TxId"`
	Canceled       bool            `json:"Canceled"`
	InvalidAddress bool            `json:"InvalidAddress"`
}

// HistoricDeposit is one entry of the account's deposit history.
type HistoricDeposit struct {
	ID            int64           `json:"Id"`
	Amount        decimal.Decimal `json:"Amount"`
	Currency      string          `json:"Currency"`
	Confirmations int             `json:"Confirmations"`
	LastUpdated   Time            `json:"LastUpdated"`
	TxID          string          `json:"TxId"`
	CryptoAddress string          `json:"CryptoAddress"`
}

// TargetCurrency returns the traded asset of a market name, e.g. "LTC" for
// "BTC-LTC". The full market name is returned when there is no separator.
func TargetCurrency(marketName string) string {
	if _, target, ok := strings.Cut(marketName, "-"); ok {
		return target
	}
	return marketName
}

// QuoteCurrency returns the settlement currency of a market name, e.g.
// "BTC" for "BTC-LTC".
func QuoteCurrency(marketName string) string {
	base, _, _ := strings.Cut(marketName, "-")
	return base
}
