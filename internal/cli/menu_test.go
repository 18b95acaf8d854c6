package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vitos/binance_testnet_bot/internal/cli"
	"github.com/vitos/binance_testnet_bot/internal/config"
	"github.com/vitos/binance_testnet_bot/internal/domain"
	"github.com/vitos/binance_testnet_bot/internal/infrastructure/exchange"
)

type placedOrder struct {
	Symbol   string
	Side     domain.Side
	Type     domain.OrderType
	Quantity decimal.Decimal
	Price    decimal.Decimal
}

// MockExchange records calls and serves canned responses.
type MockExchange struct {
	Balances     []domain.Balance
	Price        float64
	PriceErr     error
	PriceSymbols []string
	Open         []domain.Order
	Placed       []placedOrder
	Cancelled    []int64
}

func (m *MockExchange) Ping(ctx context.Context) error { return nil }

func (m *MockExchange) GetAccountBalance(ctx context.Context) ([]domain.Balance, error) {
	return m.Balances, nil
}

func (m *MockExchange) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	m.PriceSymbols = append(m.PriceSymbols, symbol)
	if m.PriceErr != nil {
		return 0, m.PriceErr
	}
	return m.Price, nil
}

func (m *MockExchange) PlaceMarketOrder(ctx context.Context, symbol string, side domain.Side, quantity decimal.Decimal) (*domain.Order, error) {
	m.Placed = append(m.Placed, placedOrder{Symbol: symbol, Side: side, Type: domain.OrderTypeMarket, Quantity: quantity})
	return &domain.Order{OrderID: 42, Symbol: symbol, Side: side, Type: domain.OrderTypeMarket, Status: "FILLED", ExecutedQty: quantity}, nil
}

func (m *MockExchange) PlaceLimitOrder(ctx context.Context, symbol string, side domain.Side, quantity, price decimal.Decimal) (*domain.Order, error) {
	m.Placed = append(m.Placed, placedOrder{Symbol: symbol, Side: side, Type: domain.OrderTypeLimit, Quantity: quantity, Price: price})
	return &domain.Order{OrderID: 77, Symbol: symbol, Side: side, Type: domain.OrderTypeLimit, Status: "NEW", OrigQty: quantity, Price: price}, nil
}

func (m *MockExchange) GetOpenOrders(ctx context.Context, symbol string) ([]domain.Order, error) {
	return m.Open, nil
}

func (m *MockExchange) CancelOrder(ctx context.Context, symbol string, orderID int64) (*domain.Order, error) {
	m.Cancelled = append(m.Cancelled, orderID)
	return &domain.Order{OrderID: orderID, Symbol: symbol, Status: "CANCELED"}, nil
}

func runMenu(t *testing.T, ex domain.Exchange, input string) string {
	t.Helper()
	cfg := &config.Config{}
	cfg.Trading.DefaultSymbol = "BTCUSDT"
	cfg.Trading.DefaultQuantity = "0.001"

	var out bytes.Buffer
	menu := cli.NewMenu(ex, cfg, strings.NewReader(input), &out, zap.NewNop())
	menu.Run(context.Background())
	return out.String()
}

func TestMenuBalance(t *testing.T) {
	mock := &MockExchange{Balances: []domain.Balance{{
		Asset:  "BTC",
		Free:   decimal.RequireFromString("1"),
		Locked: decimal.Zero,
	}}}
	out := runMenu(t, mock, "1\n\n9\n")

	assert.Contains(t, out, "=== Account Balances ===")
	assert.Contains(t, out, "BTC: Free=1, Locked=0")
}

func TestMenuPriceUsesDefaultSymbol(t *testing.T) {
	mock := &MockExchange{Price: 65000.5}
	out := runMenu(t, mock, "2\n\n\n9\n")

	require.Equal(t, []string{"BTCUSDT"}, mock.PriceSymbols)
	assert.Contains(t, out, "Current BTCUSDT price: $65000.50")
	assert.Contains(t, out, "Goodbye")
}

func TestMenuMarketBuyConfirmed(t *testing.T) {
	mock := &MockExchange{}
	out := runMenu(t, mock, "3\n\n\nyes\n\n9\n")

	require.Len(t, mock.Placed, 1)
	assert.Equal(t, "BTCUSDT", mock.Placed[0].Symbol)
	assert.Equal(t, domain.SideBuy, mock.Placed[0].Side)
	assert.Equal(t, domain.OrderTypeMarket, mock.Placed[0].Type)
	assert.True(t, mock.Placed[0].Quantity.Equal(decimal.RequireFromString("0.001")))
	assert.Contains(t, out, "Order ID: 42")
	assert.Contains(t, out, "Status: FILLED")
}

func TestMenuMarketSellDeclined(t *testing.T) {
	mock := &MockExchange{}
	out := runMenu(t, mock, "4\n\n\nno\n\n9\n")

	assert.Empty(t, mock.Placed)
	assert.Contains(t, out, "❌ Order cancelled")
}

func TestMenuLimitSell(t *testing.T) {
	mock := &MockExchange{Price: 65000.5}
	out := runMenu(t, mock, "6\n\n0.5\n65001\nyes\n\n9\n")

	require.Len(t, mock.Placed, 1)
	placed := mock.Placed[0]
	assert.Equal(t, domain.SideSell, placed.Side)
	assert.Equal(t, domain.OrderTypeLimit, placed.Type)
	assert.True(t, placed.Quantity.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, placed.Price.Equal(decimal.RequireFromString("65001")))
	// The current price is shown before asking for the limit.
	assert.Contains(t, out, "Current BTCUSDT price: $65000.50")
	assert.Contains(t, out, "Limit order placed successfully")
}

func TestMenuOpenOrders(t *testing.T) {
	mock := &MockExchange{Open: []domain.Order{{
		OrderID: 9,
		Symbol:  "BTCUSDT",
		Side:    domain.SideBuy,
		Type:    domain.OrderTypeLimit,
		Price:   decimal.RequireFromString("64000"),
		OrigQty: decimal.RequireFromString("0.1"),
	}}}
	out := runMenu(t, mock, "7\n\n\n9\n")

	assert.Contains(t, out, "Open Orders for BTCUSDT")
	assert.Contains(t, out, "Order ID: 9")
	assert.Contains(t, out, "Price: 64000, Qty: 0.1")
}

func TestMenuCancelOrderRepromptsInvalidID(t *testing.T) {
	mock := &MockExchange{}
	out := runMenu(t, mock, "8\n\nabc\n123\nyes\n\n9\n")

	require.Equal(t, []int64{123}, mock.Cancelled)
	assert.Contains(t, out, "❌ Invalid input")
	assert.Contains(t, out, "Order 123 cancelled successfully")
}

func TestMenuCancelAborted(t *testing.T) {
	mock := &MockExchange{}
	out := runMenu(t, mock, "8\n\n123\nno\n\n9\n")

	assert.Empty(t, mock.Cancelled)
	assert.Contains(t, out, "Cancellation aborted")
}

func TestMenuErrorKeepsLooping(t *testing.T) {
	mock := &MockExchange{PriceErr: exchange.APIError{Status: 400, Code: -1121, Msg: "Invalid symbol."}}
	out := runMenu(t, mock, "2\nFOO\n\n9\n")

	assert.Contains(t, out, "❌ API error 400: Invalid symbol.")
	assert.Contains(t, out, "Goodbye")
}

func TestMenuInvalidChoice(t *testing.T) {
	out := runMenu(t, &MockExchange{}, "0\n\n9\n")
	assert.Contains(t, out, "Invalid choice")
}

func TestMenuEndsOnEOF(t *testing.T) {
	out := runMenu(t, &MockExchange{}, "")
	assert.Contains(t, out, "BINANCE TRADING BOT")
}
