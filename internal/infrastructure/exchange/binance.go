package exchange

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vitos/binance_testnet_bot/internal/domain"
)

const BinanceTestnetURL = "https://testnet.binance.vision"

const defaultHTTPTimeout = 10 * time.Second

// BinanceAdapter talks to the Binance Spot REST API (testnet or live, keyed
// by base URL). Signed requests carry timestamp + HMAC-SHA256 signature in
// the query string; parameters travel in the query string for every verb,
// which is what the API expects even on POST.
type BinanceAdapter struct {
	apiKey    string
	apiSecret string
	baseURL   string
	client    *http.Client
	log       *zap.Logger
	timeNow   func() time.Time // For testing
}

func NewBinanceAdapter(apiKey, apiSecret, baseURL string, timeout time.Duration, log *zap.Logger) *BinanceAdapter {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BinanceAdapter{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: timeout},
		log:       log,
		timeNow:   time.Now,
	}
}

// --- signing and dispatch ---

// sign computes the lowercase hex HMAC-SHA256 of payload keyed by the API
// secret. Pure function of (secret, payload).
func (b *BinanceAdapter) sign(payload string) string {
	h := hmac.New(sha256.New, []byte(b.apiSecret))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

// sendRequest performs one HTTP round trip. When signed, the timestamp is
// captured right before signing and the signature covers the full encoded
// parameter set including it; the signature is appended last so the signed
// string and the transmitted string match byte for byte.
func (b *BinanceAdapter) sendRequest(ctx context.Context, method, path string, params *Params, signed bool) ([]byte, error) {
	if params == nil {
		params = NewParams()
	}
	if signed {
		params.Add("timestamp", strconv.FormatInt(b.timeNow().UnixMilli(), 10))
		params.Add("signature", b.sign(params.Encode()))
	}

	urlStr := b.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		urlStr += "?" + encoded
	}
	req, err := http.NewRequestWithContext(ctx, method, urlStr, nil)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	req.Header.Set("X-MBX-APIKEY", b.apiKey)

	start := time.Now()
	resp, err := b.client.Do(req)
	if err != nil {
		b.log.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}

	b.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Bool("signed", signed),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, body)
	}
	return body, nil
}

// --- operations ---

func (b *BinanceAdapter) Ping(ctx context.Context) error {
	_, err := b.sendRequest(ctx, http.MethodGet, "/api/v3/ping", nil, false)
	return err
}

// GetAccountBalance returns the account balances filtered to assets with a
// non-zero free or locked amount.
func (b *BinanceAdapter) GetAccountBalance(ctx context.Context) ([]domain.Balance, error) {
	body, err := b.sendRequest(ctx, http.MethodGet, "/api/v3/account", nil, true)
	if err != nil {
		return nil, err
	}
	var resp accountResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Field: "balances", Err: err}
	}
	if resp.Balances == nil {
		return nil, &ParseError{Field: "balances"}
	}
	balances := make([]domain.Balance, 0, len(resp.Balances))
	for _, raw := range resp.Balances {
		free, err := decimal.NewFromString(raw.Free)
		if err != nil {
			return nil, &ParseError{Field: "free", Err: err}
		}
		locked, err := decimal.NewFromString(raw.Locked)
		if err != nil {
			return nil, &ParseError{Field: "locked", Err: err}
		}
		if free.Sign() <= 0 && locked.Sign() <= 0 {
			continue
		}
		balances = append(balances, domain.Balance{Asset: raw.Asset, Free: free, Locked: locked})
	}
	return balances, nil
}

func (b *BinanceAdapter) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	params := NewParams().Add("symbol", symbol)
	body, err := b.sendRequest(ctx, http.MethodGet, "/api/v3/ticker/price", params, false)
	if err != nil {
		return 0, err
	}
	var resp tickerPriceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, &ParseError{Field: "price", Err: err}
	}
	if resp.Price == "" {
		return 0, &ParseError{Field: "price"}
	}
	price, err := strconv.ParseFloat(resp.Price, 64)
	if err != nil {
		return 0, &ParseError{Field: "price", Err: err}
	}
	return price, nil
}

func (b *BinanceAdapter) PlaceMarketOrder(ctx context.Context, symbol string, side domain.Side, quantity decimal.Decimal) (*domain.Order, error) {
	params := NewParams().
		Add("symbol", symbol).
		Add("side", string(side)).
		Add("type", string(domain.OrderTypeMarket)).
		Add("quantity", quantity.String())
	return b.placeOrder(ctx, params)
}

func (b *BinanceAdapter) PlaceLimitOrder(ctx context.Context, symbol string, side domain.Side, quantity, price decimal.Decimal) (*domain.Order, error) {
	params := NewParams().
		Add("symbol", symbol).
		Add("side", string(side)).
		Add("type", string(domain.OrderTypeLimit)).
		Add("timeInForce", domain.TimeInForceGTC).
		Add("quantity", quantity.String()).
		Add("price", price.String())
	return b.placeOrder(ctx, params)
}

func (b *BinanceAdapter) placeOrder(ctx context.Context, params *Params) (*domain.Order, error) {
	body, err := b.sendRequest(ctx, http.MethodPost, "/api/v3/order", params, true)
	if err != nil {
		return nil, err
	}
	var resp orderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Field: "order", Err: err}
	}
	return parseOrder(resp)
}

func (b *BinanceAdapter) GetOpenOrders(ctx context.Context, symbol string) ([]domain.Order, error) {
	params := NewParams().Add("symbol", symbol)
	body, err := b.sendRequest(ctx, http.MethodGet, "/api/v3/openOrders", params, true)
	if err != nil {
		return nil, err
	}
	var resp []orderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Field: "orders", Err: err}
	}
	orders := make([]domain.Order, 0, len(resp))
	for _, raw := range resp {
		order, err := parseOrder(raw)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (b *BinanceAdapter) CancelOrder(ctx context.Context, symbol string, orderID int64) (*domain.Order, error) {
	params := NewParams().
		Add("symbol", symbol).
		Add("orderId", strconv.FormatInt(orderID, 10))
	body, err := b.sendRequest(ctx, http.MethodDelete, "/api/v3/order", params, true)
	if err != nil {
		return nil, err
	}
	var resp orderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Field: "order", Err: err}
	}
	return parseOrder(resp)
}
