// Command verify is an operational self-check for the signing pipeline.
//
// It recomputes cross-implementation reference vectors with a throwaway key,
// derives the wallet address from HL_PRIVATE_KEY, prints the full signing
// trace of a probe order against live market data, and with -submit places
// that order as an immediate-or-cancel limit.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/deltabadger/hyperliquid-go/client"
	"github.com/deltabadger/hyperliquid-go/constants"
	"github.com/deltabadger/hyperliquid-go/signing"
	"github.com/deltabadger/hyperliquid-go/state/sqlite"
	"github.com/deltabadger/hyperliquid-go/types"
	"github.com/deltabadger/hyperliquid-go/utils"
)

const (
	defaultCoin        = "ETH"
	defaultNotionalUSD = 12.0
	defaultSlippageBps = 20
	defaultStatePath   = "data/verify.db"
)

// fileConfig is the optional YAML config. Every field has a working default
// so the command runs with nothing but HL_PRIVATE_KEY set.
type fileConfig struct {
	BaseURL        string  `yaml:"base_url"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	LogLevel       string  `yaml:"log_level"`
	StatePath      string  `yaml:"state_path"`
	Coin           string  `yaml:"coin"`
	NotionalUSD    float64 `yaml:"notional_usd"`
	SlippageBps    int     `yaml:"slippage_bps"`
}

func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func newLogger(level string) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	switch level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	logger, err := zapCfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func main() {
	configPath := flag.String("config", "", "optional YAML config path")
	testnet := flag.Bool("testnet", false, "use the testnet endpoint")
	coinFlag := flag.String("coin", "", "probe order coin (default ETH)")
	notionalFlag := flag.Float64("notional", 0, "probe order notional in USD")
	submit := flag.Bool("submit", false, "place the probe order instead of stopping at the trace")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	flag.Parse()

	// Keys live in .env rather than shell history; a missing file is fine.
	_ = godotenv.Load()

	cfg := &fileConfig{}
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			fatal(err)
		}
		cfg = loaded
	}

	level := *logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	log := newLogger(level)
	defer func() { _ = log.Sync() }()

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = constants.MainnetAPIURL
	}
	if *testnet {
		baseURL = constants.TestnetAPIURL
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = constants.DefaultTimeout * time.Second
	}
	isMainnet := baseURL == constants.MainnetAPIURL

	if err := checkReferenceVectors(); err != nil {
		fatal(fmt.Errorf("reference vectors: %w", err))
	}
	log.Info("reference vectors verified")

	privateKey := strings.TrimSpace(os.Getenv("HL_PRIVATE_KEY"))
	if privateKey == "" {
		fatal(errors.New("HL_PRIVATE_KEY is required"))
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		fatal(fmt.Errorf("invalid HL_PRIVATE_KEY: %w", err))
	}
	address := crypto.PubkeyToAddress(key.PublicKey)
	log.Info("wallet derived", zap.String("address", address.Hex()))

	if wallet := strings.TrimSpace(os.Getenv("HL_WALLET_ADDRESS")); wallet != "" && !strings.EqualFold(wallet, address.Hex()) {
		fatal(fmt.Errorf("HL_WALLET_ADDRESS %s does not match the private key's address %s", wallet, address.Hex()))
	}

	var vaultAddress *string
	if v := strings.TrimSpace(os.Getenv("HL_VAULT_ADDRESS")); v != "" {
		vaultAddress = &v
	}

	coin := *coinFlag
	if coin == "" {
		coin = cfg.Coin
	}
	if coin == "" {
		coin = defaultCoin
	}
	notional := *notionalFlag
	if notional <= 0 {
		notional = cfg.NotionalUSD
	}
	if notional <= 0 {
		notional = defaultNotionalUSD
	}
	slippageBps := cfg.SlippageBps
	if slippageBps <= 0 {
		slippageBps = defaultSlippageBps
	}

	info, err := client.NewInfo(baseURL, timeout)
	if err != nil {
		fatal(err)
	}
	assetID, err := info.NameToAsset(coin)
	if err != nil {
		fatal(err)
	}
	szDecimals, err := lookupSzDecimals(info, coin)
	if err != nil {
		fatal(err)
	}

	mids, err := info.AllMids("")
	if err != nil {
		fatal(err)
	}
	midStr, ok := mids[coin]
	if !ok {
		fatal(fmt.Errorf("no mid price for %s", coin))
	}
	mid, err := strconv.ParseFloat(midStr, 64)
	if err != nil {
		fatal(fmt.Errorf("invalid mid price %q: %w", midStr, err))
	}

	limitPx := utils.RoundPrice(mid*(1+float64(slippageBps)/10000), 5, 6-szDecimals)
	size := roundDown(notional/limitPx, szDecimals)
	if size <= 0 {
		fatal(fmt.Errorf("size rounds to zero at notional %.2f, raise -notional", notional))
	}

	order := types.OrderRequest{
		Coin:    coin,
		IsBuy:   true,
		Sz:      size,
		LimitPx: limitPx,
		OrderType: types.OrderType{
			Limit: &types.LimitOrderType{Tif: types.TifIoc},
		},
	}
	wire, err := signing.OrderRequestToOrderWire(order, assetID)
	if err != nil {
		fatal(err)
	}
	action, err := signing.OrderWiresToOrderAction([]types.OrderWire{wire}, nil, types.GroupingNa)
	if err != nil {
		fatal(err)
	}

	log.Info("probe order built",
		zap.String("coin", coin),
		zap.Int("asset", assetID),
		zap.String("size", wire.Sz),
		zap.String("limit_px", wire.LimitPx),
		zap.Float64("notional_usd", size*limitPx),
	)

	nonce := uint64(utils.GetTimestampMs())
	trace, err := signing.TraceSignL1Action(key, action, vaultAddress, nonce, nil, isMainnet)
	if err != nil {
		fatal(err)
	}
	pretty, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(pretty))

	if !*submit {
		log.Info("dry run complete, rerun with -submit to place the probe order")
		return
	}

	exchange, err := client.NewExchange(key, baseURL, timeout, vaultAddress, nil)
	if err != nil {
		fatal(err)
	}
	exchange.SetLogger(log)

	statePath := cfg.StatePath
	if statePath == "" {
		statePath = defaultStatePath
	}
	ctx := context.Background()
	if err := os.MkdirAll(filepath.Dir(statePath), 0o755); err != nil {
		log.Warn("nonce store unavailable", zap.Error(err))
	} else if store, err := sqlite.New(statePath); err != nil {
		log.Warn("nonce store unavailable", zap.Error(err))
	} else {
		defer store.Close()
		if err := exchange.InitNonceStore(ctx, store); err != nil {
			log.Warn("nonce store unavailable", zap.Error(err))
		}
	}

	result, err := exchange.Order(coin, true, size, limitPx, order.OrderType, false, nil, nil)
	if err != nil {
		fatal(err)
	}
	resultJSON, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(resultJSON))
}

// checkReferenceVectors recomputes two fixtures shared across the official
// SDK implementations. A mismatch means the pipeline is broken and no real
// key should be used until it is fixed.
func checkReferenceVectors() error {
	key, err := crypto.HexToECDSA("0123456789012345678901234567890123456789012345678901234567890123")
	if err != nil {
		return err
	}

	order := types.OrderRequest{
		Coin:    "ETH",
		IsBuy:   true,
		Sz:      0.0147,
		LimitPx: 1670.1,
		OrderType: types.OrderType{
			Limit: &types.LimitOrderType{Tif: types.TifIoc},
		},
	}
	wire, err := signing.OrderRequestToOrderWire(order, 4)
	if err != nil {
		return err
	}
	action, err := signing.OrderWiresToOrderAction([]types.OrderWire{wire}, nil, types.GroupingNa)
	if err != nil {
		return err
	}
	hash, err := signing.ActionHash(action, nil, 1677777606040, nil)
	if err != nil {
		return err
	}
	agent := signing.ConstructPhantomAgent(hash, true)
	connectionID, _ := agent["connectionId"].(common.Hash)
	wantConnection := common.HexToHash("0x0fcbeda5ae3c4950a548021552a4fea2226858c4453571bf3f24ba017eac2908")
	if connectionID != wantConnection {
		return fmt.Errorf("connectionId = %s, want %s", connectionID, wantConnection)
	}

	num, err := utils.FloatToIntForHashing(1000)
	if err != nil {
		return err
	}
	dummy := utils.NewOrderedMap("type", "dummy", "num", uint64(num))
	sig, err := signing.SignL1Action(key, dummy, nil, 0, nil, true)
	if err != nil {
		return err
	}
	if sig.R != "0x53749d5b30552aeb2fca34b530185976545bb22d0b3ce6f62e31be961a59298" ||
		sig.S != "0x755c40ba9bf05223521753995abb2f73ab3229be8ec921f350cb447e384d8ed8" ||
		sig.V != 27 {
		return fmt.Errorf("l1 signature mismatch: r=%s s=%s v=%d", sig.R, sig.S, sig.V)
	}
	return nil
}

func lookupSzDecimals(info *client.Info, coin string) (int, error) {
	meta, err := info.Meta("")
	if err != nil {
		return 0, err
	}
	for _, asset := range meta.Universe {
		if asset.Name == coin {
			return asset.SzDecimals, nil
		}
	}
	return 0, fmt.Errorf("%s not found in perp universe", coin)
}

func roundDown(value float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Floor(value)
	}
	factor := math.Pow10(decimals)
	return math.Floor(value*factor) / factor
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
