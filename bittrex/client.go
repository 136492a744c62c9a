// Package bittrex is a client for the Bittrex v1.1 REST API: public market
// data plus authenticated trading and account operations. Authenticated
// requests are GETs carrying apikey and nonce query parameters and an
// apisign header holding the HMAC-SHA512 digest of the full request URL.
package bittrex

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	// Version is the API version the endpoint table below belongs to.
	Version = "v1.1"

	// BaseURL is the production API root.
	BaseURL = "https://bittrex.com/api/" + Version + "/"

	// SignHeaderName carries the request signature on authenticated calls.
	SignHeaderName = "apisign"

	defaultUserAgent = "gotrex/" + Version
)

// Config carries the immutable wiring of a Client. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	BaseURL        string
	SignHeaderName string
	UserAgent      string
	Timeout        time.Duration
	Retry          RetryPolicy
}

// DefaultConfig returns the production endpoint configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:        BaseURL,
		SignHeaderName: SignHeaderName,
		UserAgent:      defaultUserAgent,
		Timeout:        30 * time.Second,
		Retry:          DefaultRetryPolicy(),
	}
}

// Credentials is an api key/secret pair. A client without credentials can
// only reach the public endpoints.
type Credentials struct {
	Key    string
	Secret string
}

// Client talks to the exchange. It is safe for concurrent use.
type Client struct {
	cfg    Config
	creds  *Credentials
	secret []byte
	http   *resty.Client
	log    *logrus.Entry
}

var _ Exchange = (*Client)(nil)

// New returns an unauthenticated client restricted to public endpoints.
func New(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: newTransport(cfg),
		log:  logrus.WithField("component", "bittrex"),
	}
}

// NewWithCredentials returns a client that can also use the authenticated
// market and account endpoints.
func NewWithCredentials(cfg Config, creds Credentials) *Client {
	c := New(cfg)
	c.creds = &creds
	c.secret = []byte(creds.Secret)
	return c
}

// buildRequest resolves path against the base URL and produces the final
// request URI plus any authentication header. An authenticated request on a
// credential-less client fails here, before any network I/O.
func (c *Client) buildRequest(path string, params url.Values, authenticated bool) (string, map[string]string, error) {
	base := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/" + path

	if !authenticated {
		uri := base
		if q := params.Encode(); q != "" {
			uri += "?" + q
		}
		return uri, nil, nil
	}

	if c.creds == nil {
		return "", nil, ErrUnauthorized
	}
	uri, digest := SignRequest(base, params, c.creds.Key, c.secret)
	return uri, map[string]string{c.cfg.SignHeaderName: digest}, nil
}

// call runs the full request pipeline: build (and sign), send with the
// retry policy, then unwrap the response envelope into T.
func call[T any](ctx context.Context, c *Client, path string, params url.Values, authenticated bool) (T, error) {
	var zero T
	uri, header, err := c.buildRequest(path, params, authenticated)
	if err != nil {
		return zero, err
	}
	c.log.WithField("path", path).Debug("GET")
	body, err := c.send(ctx, uri, header)
	if err != nil {
		return zero, err
	}
	return decodeEnvelope[T](body)
}

// GetMarkets lists all markets and their metadata.
func (c *Client) GetMarkets(ctx context.Context) ([]Market, error) {
	return call[[]Market](ctx, c, endpointGetMarkets, nil, false)
}

// GetCurrencies lists all supported currencies and their metadata.
func (c *Client) GetCurrencies(ctx context.Context) ([]Currency, error) {
	return call[[]Currency](ctx, c, endpointGetCurrencies, nil, false)
}

// GetTicker returns the current bid, ask and last price of one market.
func (c *Client) GetTicker(ctx context.Context, market string) (*Ticker, error) {
	params := url.Values{"market": {market}}
	ticker, err := call[Ticker](ctx, c, endpointGetTicker, params, false)
	if err != nil {
		return nil, err
	}
	ticker.MarketName = market
	return &ticker, nil
}

// GetMarketSummaries returns the last 24 hours of all markets.
func (c *Client) GetMarketSummaries(ctx context.Context) ([]MarketSummary, error) {
	return call[[]MarketSummary](ctx, c, endpointGetMarketSummaries, nil, false)
}

// GetMarketSummary returns the last 24 hours of one market.
func (c *Client) GetMarketSummary(ctx context.Context, market string) (*MarketSummary, error) {
	params := url.Values{"market": {market}}
	summary, err := call[MarketSummary](ctx, c, endpointGetMarketSummary, params, false)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetOrderBook returns the order book of one market. With BookSideBoth the
// endpoint answers a two-sided book; with a single side it answers a flat
// list, which is placed into the matching side of the result.
func (c *Client) GetOrderBook(ctx context.Context, market string, side BookSide, depth int) (*OrderBook, error) {
	params := url.Values{
		"market": {market},
		"type":   {string(side)},
		"depth":  {strconv.Itoa(depth)},
	}

	book := &OrderBook{MarketName: market}
	switch side {
	case BookSideBuy, BookSideSell:
		entries, err := call[[]OrderBookEntry](ctx, c, endpointGetOrderBook, params, false)
		if err != nil {
			return nil, err
		}
		if side == BookSideBuy {
			book.Buy = entries
		} else {
			book.Sell = entries
		}
	default:
		both, err := call[OrderBook](ctx, c, endpointGetOrderBook, params, false)
		if err != nil {
			return nil, err
		}
		book.Buy = both.Buy
		book.Sell = both.Sell
	}
	return book, nil
}

// GetMarketHistory returns recent public trades of one market.
func (c *Client) GetMarketHistory(ctx context.Context, market string) ([]Trade, error) {
	params := url.Values{"market": {market}}
	return call[[]Trade](ctx, c, endpointGetMarketHistory, params, false)
}

// BuyLimit places a limit buy order.
func (c *Client) BuyLimit(ctx context.Context, market string, quantity, rate decimal.Decimal) (*AcceptedOrder, error) {
	return c.placeLimit(ctx, endpointBuyLimit, market, quantity, rate)
}

// SellLimit places a limit sell order.
func (c *Client) SellLimit(ctx context.Context, market string, quantity, rate decimal.Decimal) (*AcceptedOrder, error) {
	return c.placeLimit(ctx, endpointSellLimit, market, quantity, rate)
}

func (c *Client) placeLimit(ctx context.Context, path, market string, quantity, rate decimal.Decimal) (*AcceptedOrder, error) {
	params := url.Values{
		"market":   {market},
		"quantity": {quantity.String()},
		"rate":     {rate.String()},
	}
	accepted, err := call[AcceptedOrder](ctx, c, path, params, true)
	if err != nil {
		return nil, err
	}
	return &accepted, nil
}

// CancelOrder cancels the open order with the given uuid.
func (c *Client) CancelOrder(ctx context.Context, orderUUID string) error {
	params := url.Values{"uuid": {orderUUID}}
	_, err := call[json.RawMessage](ctx, c, endpointCancelOrder, params, true)
	return err
}

// GetOpenOrders returns the account's open orders, restricted to one market
// when market is non-empty.
func (c *Client) GetOpenOrders(ctx context.Context, market string) ([]OpenOrder, error) {
	params := url.Values{}
	if market != "" {
		params.Set("market", market)
	}
	return call[[]OpenOrder](ctx, c, endpointGetOpenOrders, params, true)
}

// GetBalances returns the balances of all currencies in the account.
func (c *Client) GetBalances(ctx context.Context) ([]Balance, error) {
	return call[[]Balance](ctx, c, endpointGetBalances, nil, true)
}

// GetBalance returns the account's balance of one currency.
func (c *Client) GetBalance(ctx context.Context, currency string) (*Balance, error) {
	params := url.Values{"currency": {currency}}
	balance, err := call[Balance](ctx, c, endpointGetBalance, params, true)
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// GetDepositAddress returns the deposit address of one currency.
func (c *Client) GetDepositAddress(ctx context.Context, currency string) (*DepositAddress, error) {
	params := url.Values{"currency": {currency}}
	address, err := call[DepositAddress](ctx, c, endpointGetDepositAddress, params, true)
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// Withdraw sends funds to an external address. paymentID is optional and
// omitted from the request when empty.
func (c *Client) Withdraw(ctx context.Context, currency string, quantity decimal.Decimal, address, paymentID string) (*AcceptedWithdrawal, error) {
	params := url.Values{
		"currency": {currency},
		"quantity": {quantity.String()},
		"address":  {address},
	}
	if paymentID != "" {
		params.Set("paymentid", paymentID)
	}
	accepted, err := call[AcceptedWithdrawal](ctx, c, endpointWithdraw, params, true)
	if err != nil {
		return nil, err
	}
	return &accepted, nil
}

// GetOrder looks up a single order, open or closed, by uuid.
func (c *Client) GetOrder(ctx context.Context, orderUUID string) (*Order, error) {
	params := url.Values{"uuid": {orderUUID}}
	order, err := call[Order](ctx, c, endpointGetOrder, params, true)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderHistory returns the account's closed orders, restricted to one
// market when market is non-empty.
func (c *Client) GetOrderHistory(ctx context.Context, market string) ([]HistoricOrder, error) {
	params := url.Values{}
	if market != "" {
		params.Set("market", market)
	}
	return call[[]HistoricOrder](ctx, c, endpointGetOrderHistory, params, true)
}

// GetWithdrawalHistory returns the account's withdrawals, restricted to one
// currency when currency is non-empty.
func (c *Client) GetWithdrawalHistory(ctx context.Context, currency string) ([]HistoricWithdrawal, error) {
	params := url.Values{}
	if currency != "" {
		params.Set("currency", currency)
	}
	return call[[]HistoricWithdrawal](ctx, c, endpointGetWithdrawalHistory, params, true)
}

// GetDepositHistory returns the account's deposits, restricted to one
// currency when currency is non-empty.
func (c *Client) GetDepositHistory(ctx context.Context, currency string) ([]HistoricDeposit, error) {
	params := url.Values{}
	if currency != "" {
		params.Set("currency", currency)
	}
	return call[[]HistoricDeposit](ctx, c, endpointGetDepositHistory, params, true)
}
