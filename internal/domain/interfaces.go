package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Exchange defines the interface for interacting with a crypto exchange.
// Every call is a single synchronous request/response round trip.
type Exchange interface {
	Ping(ctx context.Context) error
	GetAccountBalance(ctx context.Context) ([]Balance, error)
	GetCurrentPrice(ctx context.Context, symbol string) (float64, error)
	PlaceMarketOrder(ctx context.Context, symbol string, side Side, quantity decimal.Decimal) (*Order, error)
	PlaceLimitOrder(ctx context.Context, symbol string, side Side, quantity, price decimal.Decimal) (*Order, error)
	GetOpenOrders(ctx context.Context, symbol string) ([]Order, error)
	CancelOrder(ctx context.Context, symbol string, orderID int64) (*Order, error)
}
