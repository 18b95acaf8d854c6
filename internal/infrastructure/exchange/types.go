package exchange

import (
	"github.com/shopspring/decimal"

	"github.com/vitos/binance_testnet_bot/internal/domain"
)

type tickerPriceResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

type accountResponse struct {
	Balances []struct {
		Asset  string `json:"asset"`
		Free   string `json:"free"`
		Locked string `json:"locked"`
	} `json:"balances"`
}

type orderResponse struct {
	Symbol      string `json:"symbol"`
	OrderID     int64  `json:"orderId"`
	Status      string `json:"status"`
	Side        string `json:"side"`
	Type        string `json:"type"`
	Price       string `json:"price"`
	OrigQty     string `json:"origQty"`
	ExecutedQty string `json:"executedQty"`
}

func parseOrder(raw orderResponse) (*domain.Order, error) {
	price, err := parseAmount(raw.Price)
	if err != nil {
		return nil, &ParseError{Field: "price", Err: err}
	}
	origQty, err := parseAmount(raw.OrigQty)
	if err != nil {
		return nil, &ParseError{Field: "origQty", Err: err}
	}
	executedQty, err := parseAmount(raw.ExecutedQty)
	if err != nil {
		return nil, &ParseError{Field: "executedQty", Err: err}
	}
	return &domain.Order{
		OrderID:     raw.OrderID,
		Symbol:      raw.Symbol,
		Side:        domain.Side(raw.Side),
		Type:        domain.OrderType(raw.Type),
		Status:      raw.Status,
		Price:       price,
		OrigQty:     origQty,
		ExecutedQty: executedQty,
	}, nil
}

// parseAmount tolerates fields the exchange omits on some order responses.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
