package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/vitos/binance_testnet_bot/internal/cli"
	"github.com/vitos/binance_testnet_bot/internal/config"
	"github.com/vitos/binance_testnet_bot/internal/infrastructure/exchange"
	"github.com/vitos/binance_testnet_bot/internal/infrastructure/logger"
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

	// 2. Init Logger
	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 3. Init Exchange (Binance Testnet)
	adapter := exchange.NewBinanceAdapter(
		cfg.Exchange.APIKey,
		cfg.Exchange.APISecret,
		cfg.Exchange.RESTEndpoint,
		cfg.HTTPTimeout(),
		log,
	)

	// 4. Connectivity check. A failure here means bad endpoint or network,
	// so stop before offering any trading actions.
	ctx := context.Background()
	fmt.Println("\n🚀 Initializing Trading Bot...")
	if err := adapter.Ping(ctx); err != nil {
		log.Error("connectivity check failed", zap.Error(err))
		fmt.Printf("❌ Cannot reach %s: %v\n", cfg.Exchange.RESTEndpoint, err)
		os.Exit(1)
	}
	fmt.Printf("✅ Connected to Binance Testnet: %s\n", cfg.Exchange.RESTEndpoint)

	// 5. Run Menu
	menu := cli.NewMenu(adapter, cfg, os.Stdin, os.Stdout, log)
	menu.Run(ctx)
}
