package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vitos/binance_testnet_bot/internal/config"
	"github.com/vitos/binance_testnet_bot/internal/domain"
	"github.com/vitos/binance_testnet_bot/internal/infrastructure/exchange"
)

// Menu is the interactive trading console. Reader and writer are injected so
// the loop can be driven from tests; all trading goes through the Exchange
// interface.
type Menu struct {
	exchange        domain.Exchange
	in              *bufio.Scanner
	out             io.Writer
	log             *zap.Logger
	defaultSymbol   string
	defaultQuantity decimal.Decimal
}

func NewMenu(ex domain.Exchange, cfg *config.Config, in io.Reader, out io.Writer, log *zap.Logger) *Menu {
	if log == nil {
		log = zap.NewNop()
	}
	return &Menu{
		exchange:        ex,
		in:              bufio.NewScanner(in),
		out:             out,
		log:             log,
		defaultSymbol:   cfg.Trading.DefaultSymbol,
		defaultQuantity: cfg.DefaultQty(),
	}
}

// Run loops until the user exits or input ends. Operation errors are printed
// and the loop continues; nothing here terminates the process.
func (m *Menu) Run(ctx context.Context) {
	for {
		m.printMenu()
		choice, ok := m.readLine("\nEnter your choice (1-9): ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			m.showBalance(ctx)
		case "2":
			m.showPrice(ctx)
		case "3":
			m.marketOrder(ctx, domain.SideBuy)
		case "4":
			m.marketOrder(ctx, domain.SideSell)
		case "5":
			m.limitOrder(ctx, domain.SideBuy)
		case "6":
			m.limitOrder(ctx, domain.SideSell)
		case "7":
			m.showOpenOrders(ctx)
		case "8":
			m.cancelOrder(ctx)
		case "9":
			fmt.Fprintln(m.out, "\n👋 Exiting Trading Bot. Goodbye!")
			return
		default:
			fmt.Fprintln(m.out, "\n❌ Invalid choice. Please enter a number between 1-9")
		}
		if _, ok := m.readLine("\nPress Enter to continue..."); !ok {
			return
		}
	}
}

func (m *Menu) printMenu() {
	line := strings.Repeat("=", 50)
	fmt.Fprintln(m.out, "\n"+line)
	fmt.Fprintln(m.out, "🤖 BINANCE TRADING BOT - TESTNET")
	fmt.Fprintln(m.out, line)
	fmt.Fprintln(m.out, "1. Check Account Balance")
	fmt.Fprintln(m.out, "2. Get Current Price")
	fmt.Fprintln(m.out, "3. Place Market Order (Buy)")
	fmt.Fprintln(m.out, "4. Place Market Order (Sell)")
	fmt.Fprintln(m.out, "5. Place Limit Order (Buy)")
	fmt.Fprintln(m.out, "6. Place Limit Order (Sell)")
	fmt.Fprintln(m.out, "7. View Open Orders")
	fmt.Fprintln(m.out, "8. Cancel Order")
	fmt.Fprintln(m.out, "9. Exit")
	fmt.Fprintln(m.out, line)
}

// --- actions ---

func (m *Menu) showBalance(ctx context.Context) {
	fmt.Fprintln(m.out, "\n📊 Fetching account balance...")
	balances, err := m.exchange.GetAccountBalance(ctx)
	if err != nil {
		m.printError("get balance", err)
		return
	}
	if len(balances) == 0 {
		fmt.Fprintln(m.out, "No assets with a non-zero balance")
		return
	}
	fmt.Fprintln(m.out, "\n=== Account Balances ===")
	for _, bal := range balances {
		fmt.Fprintf(m.out, "%s: Free=%s, Locked=%s\n", bal.Asset, bal.Free, bal.Locked)
	}
}

func (m *Menu) showPrice(ctx context.Context) {
	symbol, ok := m.promptSymbol()
	if !ok {
		return
	}
	m.fetchAndPrintPrice(ctx, symbol)
}

func (m *Menu) fetchAndPrintPrice(ctx context.Context, symbol string) {
	price, err := m.exchange.GetCurrentPrice(ctx, symbol)
	if err != nil {
		m.printError("get price", err)
		return
	}
	fmt.Fprintf(m.out, "Current %s price: $%.2f\n", symbol, price)
}

func (m *Menu) marketOrder(ctx context.Context, side domain.Side) {
	if side == domain.SideBuy {
		fmt.Fprintln(m.out, "\n💰 PLACE MARKET BUY ORDER")
	} else {
		fmt.Fprintln(m.out, "\n💸 PLACE MARKET SELL ORDER")
	}
	symbol, ok := m.promptSymbol()
	if !ok {
		return
	}
	quantity, ok := m.promptDecimal(fmt.Sprintf("Enter quantity (default: %s): ", m.defaultQuantity), m.defaultQuantity)
	if !ok {
		return
	}
	if !m.confirm(fmt.Sprintf("\n⚠️ Confirm %s %s %s at MARKET price? (yes/no): ", side, quantity, symbol)) {
		fmt.Fprintln(m.out, "❌ Order cancelled")
		return
	}
	order, err := m.exchange.PlaceMarketOrder(ctx, symbol, side, quantity)
	if err != nil {
		m.printError("place market order", err)
		return
	}
	fmt.Fprintln(m.out, "✅ Order placed successfully!")
	fmt.Fprintf(m.out, "Order ID: %d\n", order.OrderID)
	fmt.Fprintf(m.out, "Status: %s\n", order.Status)
	fmt.Fprintf(m.out, "Executed Qty: %s\n", order.ExecutedQty)
}

func (m *Menu) limitOrder(ctx context.Context, side domain.Side) {
	if side == domain.SideBuy {
		fmt.Fprintln(m.out, "\n💰 PLACE LIMIT BUY ORDER")
	} else {
		fmt.Fprintln(m.out, "\n💸 PLACE LIMIT SELL ORDER")
	}
	symbol, ok := m.promptSymbol()
	if !ok {
		return
	}
	// Show the current price so the user can pick a sensible limit.
	m.fetchAndPrintPrice(ctx, symbol)

	quantity, ok := m.promptDecimal(fmt.Sprintf("Enter quantity (default: %s): ", m.defaultQuantity), m.defaultQuantity)
	if !ok {
		return
	}
	price, ok := m.promptDecimal("Enter limit price: ", decimal.Zero)
	if !ok {
		return
	}
	if !m.confirm(fmt.Sprintf("\n⚠️ Confirm %s %s %s at $%s? (yes/no): ", side, quantity, symbol, price)) {
		fmt.Fprintln(m.out, "❌ Order cancelled")
		return
	}
	order, err := m.exchange.PlaceLimitOrder(ctx, symbol, side, quantity, price)
	if err != nil {
		m.printError("place limit order", err)
		return
	}
	fmt.Fprintln(m.out, "✅ Limit order placed successfully!")
	fmt.Fprintf(m.out, "Order ID: %d\n", order.OrderID)
	fmt.Fprintf(m.out, "Status: %s\n", order.Status)
}

func (m *Menu) showOpenOrders(ctx context.Context) {
	symbol, ok := m.promptSymbol()
	if !ok {
		return
	}
	orders, err := m.exchange.GetOpenOrders(ctx, symbol)
	if err != nil {
		m.printError("get open orders", err)
		return
	}
	if len(orders) == 0 {
		fmt.Fprintf(m.out, "No open orders for %s\n", symbol)
		return
	}
	fmt.Fprintf(m.out, "\n=== Open Orders for %s ===\n", symbol)
	for _, order := range orders {
		fmt.Fprintf(m.out, "Order ID: %d\n", order.OrderID)
		fmt.Fprintf(m.out, "Side: %s, Type: %s\n", order.Side, order.Type)
		fmt.Fprintf(m.out, "Price: %s, Qty: %s\n", order.Price, order.OrigQty)
		fmt.Fprintln(m.out, "---")
	}
}

func (m *Menu) cancelOrder(ctx context.Context) {
	symbol, ok := m.promptSymbol()
	if !ok {
		return
	}
	orderID, ok := m.promptOrderID()
	if !ok {
		return
	}
	if !m.confirm(fmt.Sprintf("\n⚠️ Confirm cancel order %d? (yes/no): ", orderID)) {
		fmt.Fprintln(m.out, "❌ Cancellation aborted")
		return
	}
	order, err := m.exchange.CancelOrder(ctx, symbol, orderID)
	if err != nil {
		m.printError("cancel order", err)
		return
	}
	fmt.Fprintf(m.out, "✅ Order %d cancelled successfully (status: %s)\n", order.OrderID, order.Status)
}

// --- prompting ---

func (m *Menu) readLine(prompt string) (string, bool) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) promptSymbol() (string, bool) {
	symbol, ok := m.readLine(fmt.Sprintf("\nEnter symbol (default: %s): ", m.defaultSymbol))
	if !ok {
		return "", false
	}
	if symbol == "" {
		return m.defaultSymbol, true
	}
	return strings.ToUpper(symbol), true
}

// promptDecimal asks until it gets a positive number. An empty line returns
// def when def is positive.
func (m *Menu) promptDecimal(prompt string, def decimal.Decimal) (decimal.Decimal, bool) {
	for {
		raw, ok := m.readLine(prompt)
		if !ok {
			return decimal.Zero, false
		}
		if raw == "" && def.Sign() > 0 {
			return def, true
		}
		value, err := decimal.NewFromString(raw)
		if err == nil && value.Sign() > 0 {
			return value, true
		}
		fmt.Fprintln(m.out, "❌ Invalid input. Please enter a positive number")
	}
}

func (m *Menu) promptOrderID() (int64, bool) {
	for {
		raw, ok := m.readLine("Enter Order ID to cancel: ")
		if !ok {
			return 0, false
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err == nil && id > 0 {
			return id, true
		}
		fmt.Fprintln(m.out, "❌ Invalid input. Please enter a valid order id")
	}
}

func (m *Menu) confirm(prompt string) bool {
	answer, ok := m.readLine(prompt)
	if !ok {
		return false
	}
	return strings.EqualFold(answer, "yes")
}

func (m *Menu) printError(action string, err error) {
	m.log.Error(action+" failed", zap.Error(err))
	if apiErr, ok := exchange.AsAPIError(err); ok {
		if apiErr.Msg != "" {
			fmt.Fprintf(m.out, "❌ API error %d: %s\n", apiErr.Status, apiErr.Msg)
		} else {
			fmt.Fprintf(m.out, "❌ API error %d: %s\n", apiErr.Status, strings.TrimSpace(apiErr.Body))
		}
		return
	}
	fmt.Fprintf(m.out, "❌ %v\n", err)
}
