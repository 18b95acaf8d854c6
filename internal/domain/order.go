package domain

import "github.com/shopspring/decimal"

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

type OrderType string

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
)

// TimeInForceGTC keeps a limit order on the book until cancelled.
const TimeInForceGTC = "GTC"

// Order mirrors the exchange order response. It is never persisted or
// cached; every value comes straight from the last API call.
type Order struct {
	OrderID     int64
	Symbol      string
	Side        Side
	Type        OrderType
	Status      string
	Price       decimal.Decimal
	OrigQty     decimal.Decimal
	ExecutedQty decimal.Decimal
}

// Balance is one asset row from the account endpoint.
type Balance struct {
	Asset  string
	Free   decimal.Decimal
	Locked decimal.Decimal
}
