package sim

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/trexbot/gotrex/bittrex"
)

// Side is the direction of a simulated order. The ledger stores an explicit
// side and an unsigned quantity; the exchange's sign convention (negative
// quantities for sells) is only applied when projecting into DTO shapes.
type Side int

const (
	SideBuy Side = iota
	SideSell
)

func (s Side) String() string {
	if s == SideSell {
		return "sell"
	}
	return "buy"
}

func (s Side) orderType() string {
	if s == SideSell {
		return "LIMIT_SELL"
	}
	return "LIMIT_BUY"
}

// signed applies the exchange's sign convention to an unsigned amount.
func (s Side) signed(d decimal.Decimal) decimal.Decimal {
	if s == SideSell {
		return d.Neg()
	}
	return d
}

// ledgerOrder is one simulated order. closed is zero while the order rests.
type ledgerOrder struct {
	uuid     string
	market   string
	side     Side
	quantity decimal.Decimal
	limit    decimal.Decimal
	opened   time.Time
	closed   time.Time
}

func (o *ledgerOrder) isOpen() bool { return o.closed.IsZero() }

// price is the order's notional under the sign convention.
func (o *ledgerOrder) price() decimal.Decimal {
	return o.side.signed(o.quantity.Mul(o.limit))
}

func (o *ledgerOrder) toOpenOrder() bittrex.OpenOrder {
	limit := o.limit
	return bittrex.OpenOrder{
		OrderUUID:         o.uuid,
		Exchange:          o.market,
		OrderType:         o.side.orderType(),
		Quantity:          o.side.signed(o.quantity),
		QuantityRemaining: o.side.signed(o.quantity),
		Limit:             o.limit,
		Price:             o.price(),
		PricePerUnit:      &limit,
		Opened:            bittrex.Time{Time: o.opened},
	}
}

func (o *ledgerOrder) toOrder() bittrex.Order {
	limit := o.limit
	order := bittrex.Order{
		OrderUUID:    o.uuid,
		Exchange:     o.market,
		Type:         o.side.orderType(),
		Quantity:     o.side.signed(o.quantity),
		Limit:        o.limit,
		Price:        o.price(),
		PricePerUnit: &limit,
		Opened:       bittrex.Time{Time: o.opened},
		IsOpen:       o.isOpen(),
	}
	if o.isOpen() {
		order.QuantityRemaining = o.side.signed(o.quantity)
	} else {
		closed := bittrex.Time{Time: o.closed}
		order.Closed = &closed
	}
	return order
}

func (o *ledgerOrder) toHistoricOrder() bittrex.HistoricOrder {
	limit := o.limit
	return bittrex.HistoricOrder{
		OrderUUID:    o.uuid,
		Exchange:     o.market,
		TimeStamp:    bittrex.Time{Time: o.closed},
		OrderType:    o.side.orderType(),
		Limit:        o.limit,
		Quantity:     o.side.signed(o.quantity),
		Price:        o.price(),
		PricePerUnit: &limit,
	}
}
