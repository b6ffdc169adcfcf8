// Package constants provides configuration constants for the Hyperliquid API.
package constants

const (
	// MainnetAPIURL is the URL for Hyperliquid mainnet API
	MainnetAPIURL = "https://api.hyperliquid.xyz"

	// TestnetAPIURL is the URL for Hyperliquid testnet API
	TestnetAPIURL = "https://api.hyperliquid-testnet.xyz"

	// LocalAPIURL is the URL for local development
	LocalAPIURL = "http://localhost:3001"

	// MainnetWsURL is the URL for Hyperliquid mainnet WebSocket feeds
	MainnetWsURL = "wss://api.hyperliquid.xyz/ws"

	// TestnetWsURL is the URL for Hyperliquid testnet WebSocket feeds
	TestnetWsURL = "wss://api.hyperliquid-testnet.xyz/ws"

	// DefaultTimeout is the default HTTP request timeout in seconds
	DefaultTimeout = 30

	// DefaultSlippage is the default slippage for market orders (5%)
	DefaultSlippage = 0.05

	// SpotAssetOffset is the starting index for spot assets
	SpotAssetOffset = 10000

	// BuilderPerpDexOffset is the starting index for builder-deployed perp dexs
	BuilderPerpDexOffset = 110000

	// BuilderPerpDexStride is the asset id block reserved for each
	// builder-deployed perp dex
	BuilderPerpDexStride = 10000

	// L1ChainID is the chain id of the EIP-712 domain used for L1 actions.
	// It is a fixed protocol constant, not a real chain.
	L1ChainID = 1337

	// SignatureChainID is the chain id injected into user-signed actions,
	// as a hex string (Arbitrum Sepolia, 421614).
	SignatureChainID = "0x66eee"

	// MainnetChainName and TestnetChainName discriminate the network inside
	// user-signed actions.
	MainnetChainName = "Mainnet"
	TestnetChainName = "Testnet"

	// MainnetSource and TestnetSource select the network inside the phantom
	// agent signed for L1 actions.
	MainnetSource = "a"
	TestnetSource = "b"
)
