package bittrex

// API endpoint paths, relative to the configured base URL.
const (
	// Public
	endpointGetMarkets         = "public/getmarkets"
	endpointGetCurrencies      = "public/getcurrencies"
	endpointGetTicker          = "public/getticker"
	endpointGetMarketSummaries = "public/getmarketsummaries"
	endpointGetMarketSummary   = "public/getmarketsummary"
	endpointGetOrderBook       = "public/getorderbook"
	endpointGetMarketHistory   = "public/getmarkethistory"

	// Market (authenticated)
	endpointBuyLimit      = "market/buylimit"
	endpointSellLimit     = "market/selllimit"
	endpointCancelOrder   = "market/cancel"
	endpointGetOpenOrders = "market/getopenorders"

	// Account (authenticated)
	endpointGetBalances          = "account/getbalances"
	endpointGetBalance           = "account/getbalance"
	endpointGetDepositAddress    = "account/getdepositaddress"
	endpointWithdraw             = "account/withdraw"
	endpointGetOrder             = "account/getorder"
	endpointGetOrderHistory      = "account/getorderhistory"
	endpointGetWithdrawalHistory = "account/getwithdrawalhistory"
	endpointGetDepositHistory    = "account/getdeposithistory"
)
