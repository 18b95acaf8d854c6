package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vitos/binance_testnet_bot/internal/config"
	"github.com/vitos/binance_testnet_bot/internal/infrastructure/exchange"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config yaml path")
	flag.Parse()

	// 1. Load Config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Testing Binance Testnet interaction...")
	fmt.Printf("Endpoint: %s\n", cfg.Exchange.RESTEndpoint)
	fmt.Printf("API Key: %s...\n", maskKey(cfg.Exchange.APIKey))

	adapter := exchange.NewBinanceAdapter(
		cfg.Exchange.APIKey,
		cfg.Exchange.APISecret,
		cfg.Exchange.RESTEndpoint,
		cfg.HTTPTimeout(),
		nil,
	)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	failed := false

	// 2. Check Connectivity (Ping)
	if err := adapter.Ping(ctx); err != nil {
		fmt.Printf("❌ Ping failed: %v\n", err)
		failed = true
	} else {
		fmt.Println("✅ Ping OK")
	}

	// 3. Check Public Endpoint (Price)
	symbol := cfg.Trading.DefaultSymbol
	price, err := adapter.GetCurrentPrice(ctx, symbol)
	if err != nil {
		fmt.Printf("❌ Failed to get price: %v\n", err)
		failed = true
	} else {
		fmt.Printf("✅ Current Price (%s): %.2f\n", symbol, price)
	}

	// 4. Check Signed Endpoint (Account Balance)
	balances, err := adapter.GetAccountBalance(ctx)
	if err != nil {
		fmt.Printf("❌ Failed to get balance: %v\n", err)
		failed = true
	} else {
		fmt.Printf("✅ Account OK: %d asset(s) with a non-zero balance\n", len(balances))
		for _, bal := range balances {
			fmt.Printf("   %s: Free=%s, Locked=%s\n", bal.Asset, bal.Free, bal.Locked)
		}
	}

	if failed {
		os.Exit(1)
	}
}

func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return key[:4]
}
